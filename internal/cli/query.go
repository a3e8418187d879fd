package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for --date, or across multiple days with --days.\n\nValid prayer names: " +
			strings.Join(prayer.AllPrayerNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// queryDays resolves the --days value.
func queryDays(v string) (int, error) {
	switch v {
	case "":
		return 1, nil
	case "week":
		return 7, nil
	case "month":
		return 30, nil
	}
	n, err := parseDayCount(v)
	if err != nil {
		return 0, fmt.Errorf("invalid --days value %q: must be 1 to %d, 'week', or 'month'", v, maxDays)
	}
	return n, nil
}

type querySingleView struct {
	Prayer string `json:"prayer" yaml:"prayer"`
	Time   string `json:"time" yaml:"time"`
	Date   string `json:"date" yaml:"date"`
}

type queryMultiView struct {
	Prayer string           `json:"prayer" yaml:"prayer"`
	Days   []queryDayView `json:"days" yaml:"days"`
}

type queryDayView struct {
	Date  string `json:"date" yaml:"date"`
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func runQuery(cmd *cobra.Command, args []string) error {
	ev, err := prayer.ParseEvent(args[0])
	if err != nil {
		return fmt.Errorf("unknown prayer %q; valid names: %s", args[0], strings.Join(prayer.AllPrayerNames, ", "))
	}
	name := ev.String()

	days, err := queryDays(flagQueryDays)
	if err != nil {
		return err
	}

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	calc, err := s.calculation(s.date)
	if err != nil {
		return err
	}

	if days == 1 {
		day, err := schedule.Day(cmd.Context(), s.loc, s.date, calc)
		if err != nil {
			return explain(err)
		}
		t, _ := day.Get(ev)
		if structured(cmd) {
			return printData(cmd, querySingleView{
				Prayer: strings.ToLower(name),
				Time:   t.Formatted,
				Date:   s.date.Format(time.DateOnly),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", name, t.Formatted)
		return nil
	}

	results, err := schedule.Range(cmd.Context(), s.loc, s.date, s.date.AddDate(0, 0, days-1), calc)
	if err != nil {
		return err
	}

	if structured(cmd) {
		out := queryMultiView{Prayer: strings.ToLower(name)}
		for _, r := range results {
			v := queryDayView{Date: r.Date.Format(time.DateOnly)}
			if r.OK() {
				v.Time = cellTime(r, name)
			} else {
				v.Error = r.Err.Error()
			}
			out.Days = append(out.Days, v)
		}
		return printData(cmd, out)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Boldf("%s - %d Days", name, days))
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Date", name})
	for i, r := range results {
		tbl.AddRow([]string{r.Date.Format("Mon 02 Jan"), cellTime(r, name)})
		if s.isToday(r.Date) {
			tbl.SetHighlightRow(i)
		}
	}
	fmt.Fprint(w, tbl.Render())
	fmt.Fprintln(w)
	return nil
}
