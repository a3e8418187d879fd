// Package fasting derives the Sehri (end of the pre-dawn meal) and Iftar
// (fast-breaking) times from computed prayer schedules. Sehri is Fajr and
// Iftar is Maghrib.
package fasting

import (
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

// Unavailable marks a time that could not be computed.
const Unavailable = "--:--"

// Day is the fasting window of one date, with times already formatted.
type Day struct {
	Date  time.Time `json:"date" yaml:"date"`
	Sehri string    `json:"sehri" yaml:"sehri"`
	Iftar string    `json:"iftar" yaml:"iftar"`
}

// Available reports whether both times are known.
func (d Day) Available() bool {
	return d.Sehri != Unavailable && d.Iftar != Unavailable
}

// Derive reads Sehri and Iftar from a computed day.
func Derive(d prayer.Day) Day {
	return Day{
		Date:  d.Date,
		Sehri: formatted(d, prayer.Fajr),
		Iftar: formatted(d, prayer.Maghrib),
	}
}

// DeriveAll derives every day in order.
func DeriveAll(days []prayer.Day) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = Derive(d)
	}
	return out
}

// FromResults derives a batch. Days that failed keep their date with both
// times Unavailable.
func FromResults(results []schedule.Result) []Day {
	out := make([]Day, len(results))
	for i, r := range results {
		if !r.OK() {
			out[i] = Day{Date: r.Date, Sehri: Unavailable, Iftar: Unavailable}
			continue
		}
		out[i] = Derive(r.Day)
	}
	return out
}

// FromYear derives a year computed by schedule.Year, month by month.
func FromYear(months [][]schedule.Result) [][]Day {
	out := make([][]Day, len(months))
	for i, m := range months {
		out[i] = FromResults(m)
	}
	return out
}

func formatted(d prayer.Day, e prayer.Event) string {
	t, ok := d.Get(e)
	if !ok || t.Formatted == "" {
		return Unavailable
	}
	return t.Formatted
}
