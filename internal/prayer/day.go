package prayer

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Time is one computed event.
type Time struct {
	Event     Event   `json:"-" yaml:"-"`
	Hours     float64 `json:"hours" yaml:"hours"` // [0, 24) in the configured zone
	Formatted string  `json:"time" yaml:"time"`
}

// Day is the schedule of one calendar date. Times holds every event in
// chronological order.
type Day struct {
	Date  time.Time
	Times []Time
}

// Get returns the computed time of e.
func (d Day) Get(e Event) (Time, bool) {
	for _, t := range d.Times {
		if t.Event == e {
			return t, true
		}
	}
	return Time{}, false
}

// Lookup returns the computed time for a prayer name such as "Maghrib".
func (d Day) Lookup(name string) (Time, bool) {
	e, err := ParseEvent(name)
	if err != nil {
		return Time{}, false
	}
	return d.Get(e)
}

// Prayers places the named events on the wall clock of zone. Dhuhr is
// always on the date; an event before it whose hour is later than Dhuhr's
// belongs to the previous evening (a Fajr at 23:52), and an event after it
// whose hour is earlier belongs to the next morning (an Isha at 00:30).
func (d Day) Prayers(names []string, zone *time.Location) ([]Prayer, error) {
	midnight := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, zone)

	noon := 12.0
	if t, ok := d.Get(Dhuhr); ok {
		noon = t.Hours
	}

	wall := make(map[Event]time.Time, len(d.Times))
	for _, t := range d.Times {
		at := midnight.Add(time.Duration(math.Round(t.Hours*60)) * time.Minute)
		switch {
		case t.Event < Dhuhr && t.Hours > noon:
			at = at.AddDate(0, 0, -1)
		case t.Event > Dhuhr && t.Hours < noon:
			at = at.AddDate(0, 0, 1)
		}
		wall[t.Event] = at
	}

	prayers := make([]Prayer, 0, len(names))
	for _, name := range names {
		e, err := ParseEvent(name)
		if err != nil {
			return nil, err
		}
		at, ok := wall[e]
		if !ok {
			return nil, fmt.Errorf("%s: no time for %s", d.Date.Format(time.DateOnly), e)
		}
		prayers = append(prayers, Prayer{Name: e.String(), Time: at})
	}
	return prayers, nil
}

// Zone returns a fixed zone for a UTC offset in hours, named like "UTC+5:30".
func Zone(offset float64) *time.Location {
	secs := int(math.Round(offset * 3600))
	return time.FixedZone(ZoneName(offset), secs)
}

// ZoneName renders a UTC offset in hours as "UTC", "UTC+5" or "UTC-3:30".
func ZoneName(offset float64) string {
	mins := int(math.Round(offset * 60))
	if mins == 0 {
		return "UTC"
	}
	sign := "+"
	if mins < 0 {
		sign, mins = "-", -mins
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "UTC%s%d", sign, mins/60)
	if mins%60 != 0 {
		fmt.Fprintf(&sb, ":%02d", mins%60)
	}
	return sb.String()
}
