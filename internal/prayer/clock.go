package prayer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/astro"
)

const minutesPerDay = 24 * 60

// FormatHours renders a fractional hour in the given format after rounding
// to the nearest minute. NaN and infinities fail with ErrFormatting.
func FormatHours(h float64, f TimeFormat) (string, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return "", fmt.Errorf("%w: %v", ErrFormatting, h)
	}

	total := int(math.Round(astro.FixHour(h)*60)) % minutesPerDay
	hh, mm := total/60, total%60

	switch f {
	case Hour24:
		return fmt.Sprintf("%02d:%02d", hh, mm), nil
	case Hour12, Hour12NoSuffix:
		suffix := "am"
		if hh >= 12 {
			suffix = "pm"
		}
		h12 := hh % 12
		if h12 == 0 {
			h12 = 12
		}
		if f == Hour12NoSuffix {
			return fmt.Sprintf("%02d:%02d", h12, mm), nil
		}
		return fmt.Sprintf("%02d:%02d %s", h12, mm, suffix), nil
	case Floating:
		return fmt.Sprintf("%.2f", float64(total)/60), nil
	default:
		return "", fmt.Errorf("%w: unknown format %v", ErrFormatting, f)
	}
}

// FormatClock renders the wall-clock time of t in the given format.
func FormatClock(t time.Time, f TimeFormat) string {
	h := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	s, err := FormatHours(h, f)
	if err != nil {
		// unreachable: h is always finite
		return t.Format("15:04")
	}
	return s
}

// ParseClock parses "HH:MM", "HH:MM am|pm" or a floating hour such as
// "17.08" back into fractional hours. Strings without a suffix are read as
// 24-hour times.
func ParseClock(s string) (float64, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))

	var suffix string
	for _, sfx := range []string{"am", "pm"} {
		if rest, ok := strings.CutSuffix(s, sfx); ok {
			suffix, s = sfx, strings.TrimSpace(rest)
			break
		}
	}

	hourStr, minStr, hasColon := strings.Cut(s, ":")
	if !hasColon {
		if suffix != "" {
			return 0, fmt.Errorf("invalid time %q", raw)
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v >= 24 {
			return 0, fmt.Errorf("invalid time %q", raw)
		}
		return v, nil
	}

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	min, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if min < 0 || min > 59 {
		return 0, fmt.Errorf("invalid minute in %q", raw)
	}

	switch suffix {
	case "":
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("invalid hour in %q", raw)
		}
	default:
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("invalid hour in %q", raw)
		}
		hour %= 12
		if suffix == "pm" {
			hour += 12
		}
	}
	return float64(hour) + float64(min)/60, nil
}
