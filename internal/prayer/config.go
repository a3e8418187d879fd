package prayer

import (
	"fmt"
	"strings"
)

// AsrMethod selects the juristic shadow-length rule for Asr.
type AsrMethod int

const (
	Shafii AsrMethod = iota // shadow equals object length
	Hanafi                  // shadow equals twice object length
)

// ShadowStep returns the shadow-length factor of the method.
func (a AsrMethod) ShadowStep() float64 {
	if a == Hanafi {
		return 2
	}
	return 1
}

func (a AsrMethod) String() string {
	switch a {
	case Shafii:
		return "SHAFII"
	case Hanafi:
		return "HANAFI"
	default:
		return fmt.Sprintf("AsrMethod(%d)", int(a))
	}
}

// ParseAsrMethod accepts "shafii", "shafi", "standard", "hanafi", and the
// numeric school ids 0 and 1.
func ParseAsrMethod(s string) (AsrMethod, error) {
	switch normalizeToken(s) {
	case "SHAFII", "SHAFI", "STANDARD", "0":
		return Shafii, nil
	case "HANAFI", "1":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("unknown asr method %q: must be SHAFII or HANAFI", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a AsrMethod) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AsrMethod) UnmarshalText(b []byte) error {
	v, err := ParseAsrMethod(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// HighLatitudeRule bounds Fajr and Isha when twilight is long or never ends.
//
// Older settings used different names for the same rules: NO_ADJUSTMENT is
// NONE, MID_NIGHT is MIDNIGHT and TWILIGHT_ANGLE is ANGLE_BASED.
type HighLatitudeRule int

const (
	NoAdjustment HighLatitudeRule = iota
	MidNight
	OneSeventh
	AngleBased
)

var highLatitudeTokens = [...]string{"NONE", "MIDNIGHT", "ONE_SEVENTH", "ANGLE_BASED"}

func (r HighLatitudeRule) String() string {
	if r < 0 || int(r) >= len(highLatitudeTokens) {
		return fmt.Sprintf("HighLatitudeRule(%d)", int(r))
	}
	return highLatitudeTokens[r]
}

// nightPortion is the share of the night allowed between the anchor event
// and an event solved at the given angle.
func (r HighLatitudeRule) nightPortion(angle float64) float64 {
	switch r {
	case AngleBased:
		return angle / 60
	case MidNight:
		return 0.5
	case OneSeventh:
		return 1.0 / 7
	default:
		return 0
	}
}

// ParseHighLatitudeRule resolves a rule name, including the older spellings.
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	switch normalizeToken(s) {
	case "NONE", "NO_ADJUSTMENT", "":
		return NoAdjustment, nil
	case "MIDNIGHT", "MID_NIGHT":
		return MidNight, nil
	case "ONE_SEVENTH", "SEVENTH":
		return OneSeventh, nil
	case "ANGLE_BASED", "TWILIGHT_ANGLE", "ANGLE":
		return AngleBased, nil
	}
	return 0, fmt.Errorf("unknown high latitude rule %q: must be one of %s", s, strings.Join(highLatitudeTokens[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (r HighLatitudeRule) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *HighLatitudeRule) UnmarshalText(b []byte) error {
	v, err := ParseHighLatitudeRule(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// TimeFormat selects how fractional hours are rendered.
type TimeFormat int

const (
	Hour24         TimeFormat = iota // 17:05
	Hour12                           // 05:05 pm
	Hour12NoSuffix                   // 05:05
	Floating                         // 17.08
)

var timeFormatTokens = [...]string{"HOUR_24", "HOUR_12", "HOUR_12_NO_SUFFIX", "FLOATING"}

func (f TimeFormat) String() string {
	if f < 0 || int(f) >= len(timeFormatTokens) {
		return fmt.Sprintf("TimeFormat(%d)", int(f))
	}
	return timeFormatTokens[f]
}

// ParseTimeFormat accepts the canonical names and the short forms "24h",
// "12h", "12hns" and "float".
func ParseTimeFormat(s string) (TimeFormat, error) {
	switch normalizeToken(s) {
	case "HOUR_24", "24H", "24":
		return Hour24, nil
	case "HOUR_12", "12H", "12":
		return Hour12, nil
	case "HOUR_12_NO_SUFFIX", "12HNS", "12H_NO_SUFFIX":
		return Hour12NoSuffix, nil
	case "FLOATING", "FLOAT":
		return Floating, nil
	}
	return 0, fmt.Errorf("unknown time format %q: must be 24h, 12h, 12hns or float", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f TimeFormat) MarshalText() ([]byte, error) { return []byte(f.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *TimeFormat) UnmarshalText(b []byte) error {
	v, err := ParseTimeFormat(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// MaxCorrection is the largest manual correction, in minutes, that is applied.
// Anything outside [-MaxCorrection, MaxCorrection] is ignored.
const MaxCorrection = 59

// Correction holds signed manual adjustments in minutes.
type Correction struct {
	Fajr    int `json:"fajr,omitempty" yaml:"fajr,omitempty"`
	Dhuhr   int `json:"dhuhr,omitempty" yaml:"dhuhr,omitempty"`
	Asr     int `json:"asr,omitempty" yaml:"asr,omitempty"`
	Maghrib int `json:"maghrib,omitempty" yaml:"maghrib,omitempty"`
	Isha    int `json:"isha,omitempty" yaml:"isha,omitempty"`
}

// Hours returns the correction for e in hours, or 0 when none applies.
func (c Correction) Hours(e Event) float64 {
	var m int
	switch e {
	case Fajr:
		m = c.Fajr
	case Dhuhr:
		m = c.Dhuhr
	case Asr:
		m = c.Asr
	case Maghrib:
		m = c.Maghrib
	case Isha:
		m = c.Isha
	}
	if m < -MaxCorrection || m > MaxCorrection {
		return 0
	}
	return float64(m) / 60
}

// Config is the full set of calculation options. It is a plain value:
// pass it to Compute and the schedule functions, never share a pointer.
type Config struct {
	Convention   Convention
	Asr          AsrMethod
	HighLatitude HighLatitudeRule
	Correction   Correction
	Custom       CustomAngles
	TimeFormat   TimeFormat

	// UTCOffset is the zone offset in hours east of UTC.
	UTCOffset float64

	// DhuhrMinutes is added to solar noon.
	DhuhrMinutes float64

	// Passes fixes the number of solver passes. Zero iterates until the
	// times move by less than a second.
	Passes int
}

// DefaultConfig returns Karachi angles, Hanafi Asr, no high latitude rule
// and 12-hour output at UTC.
func DefaultConfig() Config {
	return Config{
		Convention:   Karachi,
		Asr:          Hanafi,
		HighLatitude: NoAdjustment,
		TimeFormat:   Hour12,
	}
}
