package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/fasting"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

var (
	flagFastingMonth string
	flagFastingYear  int
)

func newFastingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fasting [days]",
		Short: "Show Sehri and Iftar times",
		Long: "Display Sehri (end of the pre-dawn meal, at Fajr) and Iftar (at Maghrib) times\n" +
			"for N days starting at --date (default: 30), a calendar month or a whole year.",
		Args: cobra.MaximumNArgs(1),
		RunE: runFasting,
	}

	cmd.Flags().StringVar(&flagFastingMonth, "month", "", "Calendar month to show (YYYY-MM)")
	cmd.Flags().IntVar(&flagFastingYear, "year", 0, "Whole year to show (YYYY)")
	cmd.MarkFlagsMutuallyExclusive("month", "year")

	return cmd
}

func runFasting(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var (
		days  []fasting.Day
		start = s.date
		title string
	)

	switch {
	case cmd.Flags().Changed("year"):
		if flagFastingYear < 1 || flagFastingYear > 9999 {
			return fmt.Errorf("invalid --year %d", flagFastingYear)
		}
		start = time.Date(flagFastingYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		calc, err := s.calculation(start)
		if err != nil {
			return err
		}
		months, err := schedule.Year(ctx, s.loc, flagFastingYear, calc)
		if err != nil {
			return err
		}
		for _, m := range fasting.FromYear(months) {
			days = append(days, m...)
		}
		title = fmt.Sprintf("Sehri & Iftar - %d", flagFastingYear)

	case cmd.Flags().Changed("month"):
		if start, err = time.Parse(monthLayout, flagFastingMonth); err != nil {
			return fmt.Errorf("invalid --month %q: must be YYYY-MM", flagFastingMonth)
		}
		calc, err := s.calculation(start)
		if err != nil {
			return err
		}
		results, err := schedule.Month(ctx, s.loc, start.Year(), start.Month(), calc)
		if err != nil {
			return err
		}
		days = fasting.FromResults(results)
		title = "Sehri & Iftar - " + start.Format("January 2006")

	default:
		n := 30
		if len(args) > 0 {
			if n, err = parseDayCount(args[0]); err != nil {
				return err
			}
		}
		calc, err := s.calculation(start)
		if err != nil {
			return err
		}
		results, err := schedule.Range(ctx, s.loc, start, start.AddDate(0, 0, n-1), calc)
		if err != nil {
			return err
		}
		days = fasting.FromResults(results)
		title = fmt.Sprintf("Sehri & Iftar - %d Days", n)
	}

	calc, err := s.calculation(start)
	if err != nil {
		return err
	}

	if structured(cmd) {
		return printData(cmd, fastingView{
			Location: newLocationView(s.loc, calc),
			Days:     newFastingDayViews(days),
		})
	}

	w := cmd.OutOrStdout()
	printHeader(w, s, calc, title)

	tbl := display.NewTable([]string{"Date", "Sehri", "Iftar"})
	for i, d := range days {
		tbl.AddRow([]string{d.Date.Format("Mon 02 Jan 2006"), d.Sehri, d.Iftar})
		if s.isToday(d.Date) {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}
