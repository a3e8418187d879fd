package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/fasting"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

const monthLayout = "2006-01"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days starting at --date (default: 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Show prayer times for a calendar month",
		Long:  "Display a grid of prayer times for every day of a calendar month (default: the current month).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonth,
	}
}

func newYearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year [YYYY]",
		Short: "Show prayer times for a whole year",
		Long:  "Display one table per month for a whole year (default: the current year).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runYear,
	}
}

func newRangeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "range <start> <end>",
		Short: "Show prayer times for a date range",
		Long:  "Display a grid of prayer times for every day from start to end inclusive.\nDates use the YYYY-MM-DD format.",
		Args:  cobra.ExactArgs(2),
		RunE:  runRange,
	}
}

// runList is the handler for the list and week subcommands.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDayCount(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	end := s.date.AddDate(0, 0, days-1)
	return showRange(cmd, s, s.date, end, fmt.Sprintf("Prayer Times - %d Days", days))
}

func runRange(cmd *cobra.Command, args []string) error {
	start, err := parseDate(args[0])
	if err != nil {
		return err
	}
	end, err := parseDate(args[1])
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Prayer Times - %s to %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	return showRange(cmd, s, start, end, title)
}

func showRange(cmd *cobra.Command, s *session, start, end time.Time, title string) error {
	calc, err := s.calculation(start)
	if err != nil {
		return err
	}
	results, err := schedule.Range(cmd.Context(), s.loc, start, end, calc)
	if err != nil {
		return err
	}
	return showResults(cmd, s, calc, results, title)
}

func runMonth(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	first := time.Date(s.date.Year(), s.date.Month(), 1, 0, 0, 0, 0, time.UTC)
	if len(args) > 0 {
		if first, err = time.Parse(monthLayout, args[0]); err != nil {
			return fmt.Errorf("invalid month %q: must be YYYY-MM", args[0])
		}
	}

	calc, err := s.calculation(first)
	if err != nil {
		return err
	}
	results, err := schedule.Month(cmd.Context(), s.loc, first.Year(), first.Month(), calc)
	if err != nil {
		return err
	}
	return showResults(cmd, s, calc, results, "Prayer Times - "+first.Format("January 2006"))
}

func runYear(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	year := s.date.Year()
	if len(args) > 0 {
		y, err := strconv.Atoi(args[0])
		if err != nil || y < 1 || y > 9999 {
			return fmt.Errorf("invalid year %q: must be YYYY", args[0])
		}
		year = y
	}

	calc, err := s.calculation(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return err
	}
	months, err := schedule.Year(cmd.Context(), s.loc, year, calc)
	if err != nil {
		return err
	}

	if structured(cmd) {
		out := yearView{
			Location:    newLocationView(s.loc, calc),
			Calculation: newCalculationView(calc),
			Year:        year,
		}
		for i, m := range months {
			out.Months = append(out.Months, monthView{
				Month: time.Month(i + 1).String(),
				Days:  newDayViews(m, s.names),
			})
		}
		return printData(cmd, out)
	}

	w := cmd.OutOrStdout()
	printHeader(w, s, calc, fmt.Sprintf("Prayer Times - %d", year))
	for i, m := range months {
		tbl := scheduleTable(s, m)
		fmt.Fprintf(w, "  %s %s\n", display.Bold(time.Month(i+1).String()), display.Gray(fmt.Sprintf("(%d days)", tbl.Len())))
		fmt.Fprint(w, tbl.Render())
		fmt.Fprintln(w)
	}
	warnFailures(w, months...)
	return nil
}

// showResults prints a batch as a single table or as structured data.
func showResults(cmd *cobra.Command, s *session, calc prayer.Config, results []schedule.Result, title string) error {
	if structured(cmd) {
		return printData(cmd, scheduleView{
			Location:    newLocationView(s.loc, calc),
			Calculation: newCalculationView(calc),
			Days:        newDayViews(results, s.names),
		})
	}

	w := cmd.OutOrStdout()
	printHeader(w, s, calc, title)
	fmt.Fprint(w, scheduleTable(s, results).Render())
	fmt.Fprintln(w)
	warnFailures(w, results)
	return nil
}

func printHeader(w io.Writer, s *session, calc prayer.Config, title string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold(title))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Cyan(locationLine(s, calc)))
	fmt.Fprintf(w, "  %s\n", display.Gray(calc.Convention.Name()))
	fmt.Fprintln(w)
}

// scheduleTable builds one row per result, highlighting today.
func scheduleTable(s *session, results []schedule.Result) *display.Table {
	headers := append([]string{"Date"}, s.names...)
	tbl := display.NewTable(headers)

	for i, r := range results {
		row := []string{r.Date.Format("Mon 02 Jan")}
		for _, name := range s.names {
			row = append(row, cellTime(r, name))
		}
		tbl.AddRow(row)

		if s.isToday(r.Date) {
			tbl.SetHighlightRow(i)
		}
	}
	return tbl
}

// warnFailures notes how many days could not be computed and how to fix it.
func warnFailures(w io.Writer, batches ...[]schedule.Result) {
	failed := 0
	for _, b := range batches {
		for _, r := range b {
			if !r.OK() {
				failed++
			}
		}
	}
	if failed == 0 {
		return
	}
	fmt.Fprintf(w, "  %s\n\n", display.Yellow(fmt.Sprintf(
		"%d day(s) shown as %s: the sun does not reach the twilight angle (try --high-latitude ANGLE_BASED)",
		failed, fasting.Unavailable)))
}

// maxDays bounds every day-count argument at roughly ten years.
const maxDays = 366 * 10

// parseDayCount parses a day count in [1, maxDays].
func parseDayCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxDays {
		return 0, fmt.Errorf("invalid number of days: %q (must be between 1 and %d)", s, maxDays)
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: must be YYYY-MM-DD", s)
	}
	return d, nil
}
