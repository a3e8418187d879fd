package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nThis is equivalent to the tmux-prayer-times default behavior.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	// Priority: --prayers flag > config > defaults.
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		if s.names, err = prayer.SplitNames(flagPrayers); err != nil {
			return err
		}
	}

	today := civilDate(s.now)
	calc, err := s.calculation(today)
	if err != nil {
		return err
	}

	day, err := schedule.Day(cmd.Context(), s.loc, today, calc)
	if err != nil {
		return explain(err)
	}
	prayers, err := day.Prayers(s.names, zone(calc))
	if err != nil {
		return err
	}

	next := prayer.NextPrayer(prayers, s.now)

	// If all today's prayers have passed, use tomorrow's first prayer.
	if next == nil {
		tomorrow := today.AddDate(0, 0, 1)
		tDay, err := schedule.Day(cmd.Context(), s.loc, tomorrow, calc)
		if err != nil {
			// Keep the status line alive: show the last prayer as done.
			if len(prayers) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s --:--", prayers[len(prayers)-1].Name)
				return nil
			}
			return explain(err)
		}
		tomorrowPrayers, err := tDay.Prayers(s.names, zone(calc))
		if err != nil {
			return err
		}
		if len(tomorrowPrayers) > 0 {
			next = &tomorrowPrayers[0]
		}
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	if structured(cmd) {
		return printData(cmd, nextView{
			Prayer:    next.Name,
			Time:      prayer.FormatClock(next.Time, calc.TimeFormat),
			Remaining: prayer.FormatRemaining(prayer.TimeRemaining(*next, s.now)),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, s.now, flagFormat, calc.TimeFormat))
	return nil
}
