// Package config provides persistent configuration for the prayer-times CLI.
//
// Configuration is stored as JSON at ~/.config/prayer-times/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
)

const (
	configDirName  = "prayer-times"
	configFileName = "config.json"
)

// ErrNoLocation is returned when neither flags nor the config file give
// coordinates.
var ErrNoLocation = errors.New("no location configured: run `prayer-times config set latitude <lat>` and `prayer-times config set longitude <lon>`, or pass --latitude and --longitude")

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude", "utc_offset",
	"convention", "asr", "high_latitude",
	"time_format",
	"prayers",
	"fajr_angle", "isha_angle",
	"dhuhr_minutes",
	"fajr_correction", "dhuhr_correction", "asr_correction", "maghrib_correction", "isha_correction",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults).
type Config struct {
	// Pointers so we can tell the equator and UTC from "not set".
	Latitude  *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	UTCOffset *float64 `json:"utc_offset,omitempty" yaml:"utc_offset,omitempty"`

	// Tokens as accepted by the prayer parsers, e.g. "KARACHI", "HANAFI",
	// "ANGLE_BASED" and "HOUR_12". Prayers is a comma-separated list.
	Convention   string `json:"convention,omitempty" yaml:"convention,omitempty"`
	Asr          string `json:"asr,omitempty" yaml:"asr,omitempty"`
	HighLatitude string `json:"high_latitude,omitempty" yaml:"high_latitude,omitempty"`
	TimeFormat   string `json:"time_format,omitempty" yaml:"time_format,omitempty"`
	Prayers      string `json:"prayers,omitempty" yaml:"prayers,omitempty"`

	// FajrAngle and IshaAngle only apply to the CUSTOM convention.
	FajrAngle    float64 `json:"fajr_angle,omitempty" yaml:"fajr_angle,omitempty"`
	IshaAngle    float64 `json:"isha_angle,omitempty" yaml:"isha_angle,omitempty"`
	DhuhrMinutes float64 `json:"dhuhr_minutes,omitempty" yaml:"dhuhr_minutes,omitempty"`

	FajrCorrection    int `json:"fajr_correction,omitempty" yaml:"fajr_correction,omitempty"`
	DhuhrCorrection   int `json:"dhuhr_correction,omitempty" yaml:"dhuhr_correction,omitempty"`
	AsrCorrection     int `json:"asr_correction,omitempty" yaml:"asr_correction,omitempty"`
	MaghribCorrection int `json:"maghrib_correction,omitempty" yaml:"maghrib_correction,omitempty"`
	IshaCorrection    int `json:"isha_correction,omitempty" yaml:"isha_correction,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	return Config{
		Convention:   prayer.Karachi.String(),
		Asr:          prayer.Hanafi.String(),
		HighLatitude: prayer.NoAdjustment.String(),
		TimeFormat:   prayer.Hour24.String(),
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if _, err := geo.New(v, 0); err != nil {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = &v
	case "longitude":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if _, err := geo.New(0, v); err != nil {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = &v
	case "utc_offset":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if !(v >= -12 && v <= 14) {
			return fmt.Errorf("invalid utc_offset %q: must be between -12 and 14", value)
		}
		c.UTCOffset = &v
	case "convention":
		v, err := prayer.ParseConvention(value)
		if err != nil {
			return err
		}
		c.Convention = v.String()
	case "asr":
		v, err := prayer.ParseAsrMethod(value)
		if err != nil {
			return err
		}
		c.Asr = v.String()
	case "high_latitude":
		v, err := prayer.ParseHighLatitudeRule(value)
		if err != nil {
			return err
		}
		c.HighLatitude = v.String()
	case "time_format":
		v, err := prayer.ParseTimeFormat(value)
		if err != nil {
			return err
		}
		c.TimeFormat = v.String()
	case "prayers":
		names, err := prayer.SplitNames(value)
		if err != nil {
			return fmt.Errorf("invalid prayers list %q: %w", value, err)
		}
		c.Prayers = strings.Join(names, ",")
	case "fajr_angle", "isha_angle":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		if v <= 0 || v >= 90 {
			return fmt.Errorf("invalid %s %q: must be between 0 and 90 degrees", key, value)
		}
		if key == "fajr_angle" {
			c.FajrAngle = v
		} else {
			c.IshaAngle = v
		}
	case "dhuhr_minutes":
		v, err := parseFloat(key, value)
		if err != nil {
			return err
		}
		c.DhuhrMinutes = v
	case "fajr_correction", "dhuhr_correction", "asr_correction", "maghrib_correction", "isha_correction":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: must be an integer", key, value)
		}
		if v < -prayer.MaxCorrection || v > prayer.MaxCorrection {
			return fmt.Errorf("invalid %s %q: must be between -%d and %d minutes", key, value, prayer.MaxCorrection, prayer.MaxCorrection)
		}
		*c.correction(key) = v
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		return formatOptional(c.Latitude), nil
	case "longitude":
		return formatOptional(c.Longitude), nil
	case "utc_offset":
		return formatOptional(c.UTCOffset), nil
	case "convention":
		return c.Convention, nil
	case "asr":
		return c.Asr, nil
	case "high_latitude":
		return c.HighLatitude, nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "fajr_angle":
		return formatNonZero(c.FajrAngle), nil
	case "isha_angle":
		return formatNonZero(c.IshaAngle), nil
	case "dhuhr_minutes":
		return formatNonZero(c.DhuhrMinutes), nil
	case "fajr_correction", "dhuhr_correction", "asr_correction", "maghrib_correction", "isha_correction":
		if v := *c.correction(key); v != 0 {
			return strconv.Itoa(v), nil
		}
		return "", nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

func (c *Config) correction(key string) *int {
	switch key {
	case "fajr_correction":
		return &c.FajrCorrection
	case "dhuhr_correction":
		return &c.DhuhrCorrection
	case "asr_correction":
		return &c.AsrCorrection
	case "maghrib_correction":
		return &c.MaghribCorrection
	default:
		return &c.IshaCorrection
	}
}

// Merge overlays every field set in o onto c.
func (c *Config) Merge(o Config) {
	if o.Latitude != nil {
		c.Latitude = o.Latitude
	}
	if o.Longitude != nil {
		c.Longitude = o.Longitude
	}
	if o.UTCOffset != nil {
		c.UTCOffset = o.UTCOffset
	}
	mergeString(&c.Convention, o.Convention)
	mergeString(&c.Asr, o.Asr)
	mergeString(&c.HighLatitude, o.HighLatitude)
	mergeString(&c.TimeFormat, o.TimeFormat)
	mergeString(&c.Prayers, o.Prayers)
	mergeNumber(&c.FajrAngle, o.FajrAngle)
	mergeNumber(&c.IshaAngle, o.IshaAngle)
	mergeNumber(&c.DhuhrMinutes, o.DhuhrMinutes)
	mergeNumber(&c.FajrCorrection, o.FajrCorrection)
	mergeNumber(&c.DhuhrCorrection, o.DhuhrCorrection)
	mergeNumber(&c.AsrCorrection, o.AsrCorrection)
	mergeNumber(&c.MaghribCorrection, o.MaghribCorrection)
	mergeNumber(&c.IshaCorrection, o.IshaCorrection)
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

func mergeNumber[T int | float64](dst *T, src T) {
	if src != 0 {
		*dst = src
	}
}

// Location returns the configured coordinates, or ErrNoLocation when either
// one is missing.
func (c *Config) Location() (geo.Location, error) {
	if c.Latitude == nil || c.Longitude == nil {
		return geo.Location{}, ErrNoLocation
	}
	return geo.New(*c.Latitude, *c.Longitude)
}

// Offset returns the configured UTC offset in hours. Without one, the
// offset of the host's local zone on date is used.
func (c *Config) Offset(date time.Time) float64 {
	if c.UTCOffset != nil {
		return *c.UTCOffset
	}
	y, m, d := date.Date()
	_, secs := time.Date(y, m, d, 12, 0, 0, 0, time.Local).Zone()
	return float64(secs) / 3600
}

// Calculation builds the engine options for date from c. Unset fields take
// the values of Defaults.
func (c *Config) Calculation(date time.Time) (prayer.Config, error) {
	eff := Defaults()
	eff.Merge(*c)

	out := prayer.Config{
		UTCOffset:    c.Offset(date),
		DhuhrMinutes: eff.DhuhrMinutes,
		Custom:       prayer.CustomAngles{Fajr: eff.FajrAngle, Isha: eff.IshaAngle},
		Correction: prayer.Correction{
			Fajr:    eff.FajrCorrection,
			Dhuhr:   eff.DhuhrCorrection,
			Asr:     eff.AsrCorrection,
			Maghrib: eff.MaghribCorrection,
			Isha:    eff.IshaCorrection,
		},
	}

	var err error
	if out.Convention, err = prayer.ParseConvention(eff.Convention); err != nil {
		return prayer.Config{}, err
	}
	if out.Asr, err = prayer.ParseAsrMethod(eff.Asr); err != nil {
		return prayer.Config{}, err
	}
	if out.HighLatitude, err = prayer.ParseHighLatitudeRule(eff.HighLatitude); err != nil {
		return prayer.Config{}, err
	}
	if out.TimeFormat, err = prayer.ParseTimeFormat(eff.TimeFormat); err != nil {
		return prayer.Config{}, err
	}
	return out, nil
}

// PrayerNames returns the configured prayers, or the defaults.
func (c *Config) PrayerNames() ([]string, error) {
	if c.Prayers == "" {
		return prayer.DefaultPrayerNames, nil
	}
	return prayer.SplitNames(c.Prayers)
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be a number", key, value)
	}
	return v, nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatNonZero(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
