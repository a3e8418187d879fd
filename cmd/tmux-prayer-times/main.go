package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=v1.0.0"
var version = "dev"

// options are the parsed command-line flags.
type options struct {
	latitude     float64
	longitude    float64
	utcOffset    float64
	hasLatitude  bool
	hasLongitude bool
	hasOffset    bool
	convention   string
	asr          string
	highLatitude string
	format       string
	timeFormat   string
	prayers      string
}

func main() {
	var opts options

	// Location flags
	flag.Float64Var(&opts.latitude, "latitude", 0, "Latitude for prayer time calculation")
	flag.Float64Var(&opts.longitude, "longitude", 0, "Longitude for prayer time calculation")
	flag.Float64Var(&opts.utcOffset, "utc-offset", 0, "UTC offset in hours (default: the local zone)")

	// Calculation flags
	flag.StringVar(&opts.convention, "convention", prayer.Karachi.String(), "Calculation convention (see --list-methods)")
	flag.StringVar(&opts.asr, "asr", prayer.Hanafi.String(), "Asr method: SHAFII or HANAFI")
	flag.StringVar(&opts.highLatitude, "high-latitude", prayer.NoAdjustment.String(), "High latitude rule: NONE, MIDNIGHT, ONE_SEVENTH or ANGLE_BASED")

	// Display flags
	flag.StringVar(&opts.format, "format", prayer.FormatNameAndTime, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template (e.g. '{{.Name}} in {{.Remaining}}'). Template fields: .Name, .ShortName, .Time, .Remaining, .Hours, .Minutes")
	flag.StringVar(&opts.timeFormat, "time-format", "24h", "Time format: 24h, 12h, 12hns or float")
	flag.StringVar(&opts.prayers, "prayers", "", "Comma-separated list of prayers to track (default: Fajr,Sunrise,Dhuhr,Asr,Maghrib,Isha)")

	// Info flags
	showVersion := flag.Bool("version", false, "Print version and exit")
	listMethods := flag.Bool("list-methods", false, "Print supported calculation conventions and exit")

	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "latitude":
			opts.hasLatitude = true
		case "longitude":
			opts.hasLongitude = true
		case "utc-offset":
			opts.hasOffset = true
		}
	})

	if *showVersion {
		fmt.Printf("tmux-prayer-times %s\n", version)
		return
	}

	if *listMethods {
		printMethods(os.Stdout)
		return
	}

	if err := run(os.Stdout, opts, time.Now()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// printMethods prints the table of supported calculation conventions.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation conventions:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-24s %s\n", "Convention", "Name")
	fmt.Fprintf(w, "  %-24s %s\n", "──────────", "────")
	for _, c := range prayer.Conventions() {
		fmt.Fprintf(w, "  %-24s %s\n", c, c.Name())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --convention <NAME> to select a convention.")
}

// config turns the flags into engine options for the day containing now.
func (o options) config(now time.Time) (prayer.Config, error) {
	cfg := prayer.DefaultConfig()

	var err error
	if cfg.Convention, err = prayer.ParseConvention(o.convention); err != nil {
		return cfg, err
	}
	if cfg.Asr, err = prayer.ParseAsrMethod(o.asr); err != nil {
		return cfg, err
	}
	if cfg.HighLatitude, err = prayer.ParseHighLatitudeRule(o.highLatitude); err != nil {
		return cfg, err
	}
	if cfg.TimeFormat, err = prayer.ParseTimeFormat(o.timeFormat); err != nil {
		return cfg, err
	}

	cfg.UTCOffset = o.utcOffset
	if !o.hasOffset {
		_, secs := now.Zone()
		cfg.UTCOffset = float64(secs) / 3600
	}
	return cfg, nil
}

func run(w io.Writer, opts options, now time.Time) error {
	if !opts.hasLatitude || !opts.hasLongitude {
		return fmt.Errorf("no location specified: pass --latitude and --longitude")
	}
	loc, err := geo.New(opts.latitude, opts.longitude)
	if err != nil {
		return err
	}

	// Determine which prayers to track.
	selectedPrayers := prayer.DefaultPrayerNames
	if opts.prayers != "" {
		if selectedPrayers, err = prayer.SplitNames(opts.prayers); err != nil {
			return err
		}
	}

	cfg, err := opts.config(now)
	if err != nil {
		return err
	}

	// Re-anchor "now" to the configured zone so the calendar date matches.
	zone := prayer.Zone(cfg.UTCOffset)
	now = now.In(zone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	day, err := prayer.Compute(loc, today, cfg)
	if err != nil {
		return err
	}
	prayers, err := day.Prayers(selectedPrayers, zone)
	if err != nil {
		return err
	}

	// Find the next prayer.
	next := prayer.NextPrayer(prayers, now)

	// If all today's prayers have passed, use tomorrow's first prayer.
	if next == nil {
		tDay, err := prayer.Compute(loc, today.AddDate(0, 0, 1), cfg)
		if err != nil {
			// Keep the status bar alive: show the last prayer as done.
			if len(prayers) > 0 {
				fmt.Fprintf(w, "%s --:--", prayers[len(prayers)-1].Name)
				return nil
			}
			return err
		}

		tomorrowPrayers, err := tDay.Prayers(selectedPrayers, zone)
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

	// Format and print.
	fmt.Fprint(w, prayer.FormatOutput(*next, now, opts.format, cfg.TimeFormat))
	return nil
}
