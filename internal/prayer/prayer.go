// Package prayer computes the daily prayer schedule for a location and date
// from solar-position astronomy, and formats it for display.
package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Event is one of the seven daily solar events, in chronological order.
type Event int

const (
	Fajr Event = iota
	Sunrise
	Dhuhr
	Asr
	Sunset
	Maghrib
	Isha

	numEvents = int(Isha) + 1
)

var eventNames = [numEvents]string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Sunset", "Maghrib", "Isha",
}

func (e Event) String() string {
	if e < 0 || int(e) >= numEvents {
		return fmt.Sprintf("Event(%d)", int(e))
	}
	return eventNames[e]
}

// Events returns all events in chronological order.
func Events() []Event {
	events := make([]Event, numEvents)
	for i := range events {
		events[i] = Event(i)
	}
	return events
}

// ParseEvent resolves a case-insensitive event name. "Zuhr" is accepted as
// an alias for Dhuhr.
func ParseEvent(name string) (Event, error) {
	n := strings.TrimSpace(name)
	if strings.EqualFold(n, "Zuhr") || strings.EqualFold(n, "Zohr") {
		return Dhuhr, nil
	}
	for i, en := range eventNames {
		if strings.EqualFold(n, en) {
			return Event(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer name: %q", name)
}

// Prayer is an event placed on the wall clock.
type Prayer struct {
	Name string
	Time time.Time
}

// AllPrayerNames lists every event the engine computes, in chronological order.
var AllPrayerNames = eventNames[:]

// DefaultPrayerNames are the prayers tracked by default.
var DefaultPrayerNames = []string{
	"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha",
}

// ShortNames maps full prayer names to short abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Sunrise": "S",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Sunset":  "St",
	"Maghrib": "M",
	"Isha":    "I",
}

// SplitNames parses a comma-separated prayer list into canonical names.
func SplitNames(list string) ([]string, error) {
	var names []string
	for _, raw := range strings.Split(list, ",") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		e, err := ParseEvent(raw)
		if err != nil {
			return nil, err
		}
		names = append(names, e.String())
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("empty prayer list")
	}
	return names, nil
}

// NextPrayer finds the next upcoming prayer from the given slice, relative to now.
// If all prayers have passed, it returns nil (caller should use tomorrow's first prayer).
func NextPrayer(prayers []Prayer, now time.Time) *Prayer {
	for i := range prayers {
		if prayers[i].Time.After(now) {
			return &prayers[i]
		}
	}
	return nil
}

// CurrentPrayer returns the most recent prayer at or before now, or nil if
// now is before the first one.
func CurrentPrayer(prayers []Prayer, now time.Time) *Prayer {
	var current *Prayer
	for i := range prayers {
		if prayers[i].Time.After(now) {
			break
		}
		current = &prayers[i]
	}
	return current
}

// TimeRemaining returns the duration until the given prayer time.
func TimeRemaining(prayer Prayer, now time.Time) time.Duration {
	return prayer.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
