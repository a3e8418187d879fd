package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/fasting"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

func runToday(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	calc, err := s.calculation(s.date)
	if err != nil {
		return err
	}

	day, err := schedule.Day(cmd.Context(), s.loc, s.date, calc)
	if err != nil {
		return explain(err)
	}

	prayers, err := day.Prayers(s.names, zone(calc))
	if err != nil {
		return err
	}

	// Current/next only make sense for today.
	var current, next *prayer.Prayer
	if s.isToday(s.date) {
		current = prayer.CurrentPrayer(prayers, s.now)
		next = prayer.NextPrayer(prayers, s.now)
	}

	if structured(cmd) {
		return printData(cmd, newTodayView(s, calc, day, prayers, current, next))
	}

	printTodayRich(cmd.OutOrStdout(), s, calc, day, prayers, current, next)
	return nil
}

// explain adds a hint to errors the user can fix with a flag.
func explain(err error) error {
	if errors.Is(err, prayer.ErrSunAngleUnreachable) {
		return fmt.Errorf("%w (try --high-latitude ANGLE_BASED)", err)
	}
	return err
}

// locationLine renders the coordinates and zone, e.g. "33.6995, 73.0363 (UTC+5)".
func locationLine(s *session, calc prayer.Config) string {
	return fmt.Sprintf("%s (%s)", s.loc, prayer.ZoneName(calc.UTCOffset))
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s *session, calc prayer.Config, day prayer.Day, prayers []prayer.Prayer, current, next *prayer.Prayer) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", display.Cyan(locationLine(s, calc)))
	fmt.Fprintf(w, "  %s\n", s.date.Format("Monday, 02 January 2006"))
	fmt.Fprintf(w, "  %s\n", display.Gray(calc.Convention.Name()+", "+strings.ToLower(calc.Asr.String())+" asr"))
	fmt.Fprintln(w)

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		maxNameLen = max(maxNameLen, len(p.Name))
	}

	// Print each prayer.
	for _, p := range prayers {
		t, _ := day.Lookup(p.Name)
		line := fmt.Sprintf("  %s  %s", padRight(p.Name, maxNameLen), t.Formatted)

		switch {
		case current != nil && p.Name == current.Name:
			// Current prayer: dimmed.
			fmt.Fprintln(w, display.Dim(line))
		case next != nil && p.Name == next.Name:
			// Next prayer: accent color + countdown.
			remaining := prayer.FormatRemaining(prayer.TimeRemaining(p, s.now))
			fmt.Fprintln(w, display.Accent(line)+display.Accent("  <- next in "+remaining))
		default:
			fmt.Fprintln(w, line)
		}
	}

	f := fasting.Derive(day)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s   %s %s\n", display.Gray("Sehri"), display.Green(f.Sehri), display.Gray("Iftar"), display.Green(f.Iftar))
	fmt.Fprintln(w)
}

// padRight pads a string to the given width with spaces.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// todayView is the structured output of the root command.
type todayView struct {
	Location    locationView      `json:"location" yaml:"location"`
	Calculation calculationView   `json:"calculation" yaml:"calculation"`
	Date        string            `json:"date" yaml:"date"`
	Timings     map[string]string `json:"timings" yaml:"timings"`
	Current     string            `json:"current" yaml:"current"`
	Next        *nextView         `json:"next" yaml:"next"`
	Fasting     fastingDayView    `json:"fasting" yaml:"fasting"`
}

type nextView struct {
	Prayer    string `json:"prayer" yaml:"prayer"`
	Time      string `json:"time" yaml:"time"`
	Remaining string `json:"remaining" yaml:"remaining"`
}

func newTodayView(s *session, calc prayer.Config, day prayer.Day, prayers []prayer.Prayer, current, next *prayer.Prayer) todayView {
	timings := make(map[string]string, len(prayers))
	for _, p := range prayers {
		t, _ := day.Lookup(p.Name)
		timings[strings.ToLower(p.Name)] = t.Formatted
	}

	f := fasting.Derive(day)
	out := todayView{
		Location:    newLocationView(s.loc, calc),
		Calculation: newCalculationView(calc),
		Date:        s.date.Format(time.DateOnly),
		Timings:     timings,
		Fasting:     fastingDayView{Date: s.date.Format(time.DateOnly), Sehri: f.Sehri, Iftar: f.Iftar},
	}
	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		out.Next = &nextView{
			Prayer:    strings.ToLower(next.Name),
			Time:      prayer.FormatClock(next.Time, calc.TimeFormat),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		}
	}
	return out
}
