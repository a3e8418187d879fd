package cli

import (
	"strings"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/fasting"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/prayer"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/schedule"
)

// locationView is the location block of structured output.
type locationView struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	UTCOffset float64 `json:"utc_offset" yaml:"utc_offset"`
	Zone      string  `json:"zone" yaml:"zone"`
}

type calculationView struct {
	Convention   string `json:"convention" yaml:"convention"`
	Asr          string `json:"asr" yaml:"asr"`
	HighLatitude string `json:"high_latitude" yaml:"high_latitude"`
}

type dayView struct {
	Date    string            `json:"date" yaml:"date"`
	Timings map[string]string `json:"timings,omitempty" yaml:"timings,omitempty"`
	Error   string            `json:"error,omitempty" yaml:"error,omitempty"`
}

type scheduleView struct {
	Location    locationView    `json:"location" yaml:"location"`
	Calculation calculationView `json:"calculation" yaml:"calculation"`
	Days        []dayView       `json:"days" yaml:"days"`
}

type monthView struct {
	Month string    `json:"month" yaml:"month"`
	Days  []dayView `json:"days" yaml:"days"`
}

type yearView struct {
	Location    locationView    `json:"location" yaml:"location"`
	Calculation calculationView `json:"calculation" yaml:"calculation"`
	Year        int             `json:"year" yaml:"year"`
	Months      []monthView     `json:"months" yaml:"months"`
}

type fastingView struct {
	Location locationView     `json:"location" yaml:"location"`
	Days     []fastingDayView `json:"days" yaml:"days"`
}

type fastingDayView struct {
	Date  string `json:"date" yaml:"date"`
	Sehri string `json:"sehri" yaml:"sehri"`
	Iftar string `json:"iftar" yaml:"iftar"`
}

func newLocationView(loc geo.Location, calc prayer.Config) locationView {
	return locationView{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		UTCOffset: calc.UTCOffset,
		Zone:      prayer.ZoneName(calc.UTCOffset),
	}
}

func newCalculationView(calc prayer.Config) calculationView {
	return calculationView{
		Convention:   calc.Convention.String(),
		Asr:          calc.Asr.String(),
		HighLatitude: calc.HighLatitude.String(),
	}
}

func newDayView(r schedule.Result, names []string) dayView {
	v := dayView{Date: r.Date.Format(time.DateOnly)}
	if !r.OK() {
		v.Error = r.Err.Error()
		return v
	}
	v.Timings = make(map[string]string, len(names))
	for _, name := range names {
		v.Timings[strings.ToLower(name)] = cellTime(r, name)
	}
	return v
}

func newDayViews(results []schedule.Result, names []string) []dayView {
	out := make([]dayView, len(results))
	for i, r := range results {
		out[i] = newDayView(r, names)
	}
	return out
}

func newFastingDayViews(days []fasting.Day) []fastingDayView {
	out := make([]fastingDayView, len(days))
	for i, d := range days {
		out[i] = fastingDayView{Date: d.Date.Format(time.DateOnly), Sehri: d.Sehri, Iftar: d.Iftar}
	}
	return out
}

// cellTime is the formatted time of name in r, or the unavailable marker.
func cellTime(r schedule.Result, name string) string {
	if !r.OK() {
		return fasting.Unavailable
	}
	t, ok := r.Day.Lookup(name)
	if !ok {
		return fasting.Unavailable
	}
	return t.Formatted
}
