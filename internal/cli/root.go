package cli

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/config"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/display"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
)

// Global flags shared across all subcommands.
var (
	FlagLatitude     float64
	FlagLongitude    float64
	FlagUTCOffset    float64
	FlagConvention   string
	FlagAsr          string
	FlagHighLatitude string
	FlagTimeFormat   string
	FlagFajrAngle    float64
	FlagIshaAngle    float64
	FlagDate         string
	FlagJSON         bool
	FlagOutput       string
	FlagVerbose      bool
)

// loadedConfig holds the config loaded during PersistentPreRunE.
// Available to all subcommand handlers.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayer-times CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayer-times",
		Short:   "Islamic prayer times CLI",
		Long:    "A full-featured CLI for Islamic prayer times, computed offline from the position of the sun.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := zerolog.WarnLevel
			if FlagVerbose {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			loadedConfig = cfg

			if _, err := outputFormat(cmd); err != nil {
				return err
			}
			if FlagJSON || FlagOutput != outputText {
				display.SetEnabled(false)
			}
			logger.Debug().Bool("color", display.Enabled()).Str("config", configPath()).Msg("starting")
			return nil
		},
		// Default action: show today's prayer schedule.
		RunE:          runToday,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Register global persistent flags.
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.Float64Var(&FlagUTCOffset, "utc-offset", 0, "Override UTC offset in hours (default: the local zone)")
	pf.StringVar(&FlagConvention, "convention", "", "Calculation convention, e.g. KARACHI, MWL, ISNA (see 'methods')")
	pf.StringVar(&FlagAsr, "asr", "", "Asr method: SHAFII or HANAFI")
	pf.StringVar(&FlagHighLatitude, "high-latitude", "", "High latitude rule: NONE, MIDNIGHT, ONE_SEVENTH or ANGLE_BASED")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 24h, 12h, 12hns or float (overrides config)")
	pf.Float64Var(&FlagFajrAngle, "fajr-angle", 0, "Fajr angle for the CUSTOM convention")
	pf.Float64Var(&FlagIshaAngle, "isha-angle", 0, "Isha angle for the CUSTOM convention")
	pf.StringVar(&FlagDate, "date", "", "Date to compute (YYYY-MM-DD, default: today)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (same as --output json)")
	pf.StringVarP(&FlagOutput, "output", "o", outputText, "Output format: text, json or yaml")
	pf.BoolVarP(&FlagVerbose, "verbose", "v", false, "Log debug information to stderr")

	// Register subcommands.
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newWeekCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newYearCmd())
	rootCmd.AddCommand(newRangeCmd())
	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newFastingCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// configPath is the config file path for diagnostics, or "" when unknown.
func configPath() string {
	p, _ := config.Path()
	return p
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	var over config.Config
	if flagWasSet(flags, root, "latitude") {
		over.Latitude = &FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		over.Longitude = &FlagLongitude
	}
	if flagWasSet(flags, root, "utc-offset") {
		over.UTCOffset = &FlagUTCOffset
	}
	if flagWasSet(flags, root, "convention") {
		over.Convention = FlagConvention
	}
	if flagWasSet(flags, root, "asr") {
		over.Asr = FlagAsr
	}
	if flagWasSet(flags, root, "high-latitude") {
		over.HighLatitude = FlagHighLatitude
	}
	if flagWasSet(flags, root, "time-format") {
		over.TimeFormat = FlagTimeFormat
	}
	if flagWasSet(flags, root, "fajr-angle") {
		over.FajrAngle = FlagFajrAngle
	}
	if flagWasSet(flags, root, "isha-angle") {
		over.IshaAngle = FlagIshaAngle
	}
	cfg.Merge(over)

	return &cfg
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// session is everything a command needs to compute schedules.
type session struct {
	cfg   *config.Config
	loc   geo.Location
	names []string
	now   time.Time // wall clock in the zone of today
	date  time.Time // requested calendar date, UTC midnight
}

// newSession resolves the merged config, location and dates for cmd.
func newSession(cmd *cobra.Command) (*session, error) {
	cfg := effectiveConfig(cmd)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	names, err := cfg.PrayerNames()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	now = now.In(prayer.Zone(cfg.Offset(now)))
	date := civilDate(now)
	if FlagDate != "" {
		d, err := time.Parse(time.DateOnly, FlagDate)
		if err != nil {
			return nil, fmt.Errorf("invalid --date %q: must be YYYY-MM-DD", FlagDate)
		}
		date = d
	}

	zerolog.Ctx(cmd.Context()).Debug().
		Str("location", loc.String()).
		Str("date", date.Format(time.DateOnly)).
		Msg("session resolved")

	return &session{cfg: cfg, loc: loc, names: names, now: now, date: date}, nil
}

// calculation returns the engine options for a batch starting at date.
// The UTC offset is taken at date and held for the whole batch.
func (s *session) calculation(date time.Time) (prayer.Config, error) {
	return s.cfg.Calculation(date)
}

// zone returns the fixed zone of calc.
func zone(calc prayer.Config) *time.Location {
	return prayer.Zone(calc.UTCOffset)
}

// isToday reports whether d is the session's current calendar date.
func (s *session) isToday(d time.Time) bool {
	return civilDate(s.now).Equal(civilDate(d))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
