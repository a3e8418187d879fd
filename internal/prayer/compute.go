package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/smokyabdulrahman/offline-prayer-times/internal/astro"
	"github.com/smokyabdulrahman/offline-prayer-times/internal/geo"
)

const (
	// horizonAngle is the sun's altitude below the horizon at sunrise and
	// sunset, refraction and semi-diameter included.
	horizonAngle = 0.833

	maxPasses = 5
	tolerance = 1.0 / 3600 // hours

	// Fallback angles for the high latitude rule when Isha or Maghrib
	// are fixed intervals.
	fixedIshaAngle    = 18
	fixedMaghribAngle = 4
)

// rawTimes are fractional hours indexed by Event.
type rawTimes [numEvents]float64

var seedTimes = rawTimes{5, 6, 12, 13, 18, 18, 18}

// Compute returns the prayer schedule of loc on the calendar date of date.
// Only the year, month and day of date are used.
//
// It fails with ErrInvalidCoordinate for an out-of-range location and with
// an *UnreachableError when an event cannot be placed even after the high
// latitude rule, e.g. sunrise during polar day.
func Compute(loc geo.Location, date time.Time, cfg Config) (Day, error) {
	if err := loc.Validate(); err != nil {
		return Day{}, err
	}

	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	params := cfg.Convention.Params(cfg.Custom)
	jd := astro.LocalJulianDate(y, m, d, loc.Longitude)

	t := solve(jd, loc.Latitude, params, cfg)
	t.shiftZone(cfg.UTCOffset-loc.Longitude/15, cfg.DhuhrMinutes/60)
	t.applyIntervals(params)
	t.applyCorrection(cfg.Correction)
	t.applyHighLatitude(params, cfg.HighLatitude)

	var missing []Event
	for i, h := range t {
		if math.IsNaN(h) {
			missing = append(missing, Event(i))
		}
	}
	if len(missing) > 0 {
		return Day{}, &UnreachableError{Date: day, Events: missing}
	}

	return t.format(day, cfg.TimeFormat)
}

// solve runs the fixed-point iteration from the seed times. Each pass samples
// the ephemeris at the day fraction found by the previous pass.
func solve(jd, lat float64, p Params, cfg Config) rawTimes {
	limit, converge := cfg.Passes, false
	if limit <= 0 {
		limit, converge = maxPasses, true
	}

	t := seedTimes
	for i := 0; i < limit; i++ {
		next := solvePass(jd, lat, p, cfg.Asr, t)
		delta := maxDelta(t, next)
		t = next
		if converge && delta < tolerance {
			break
		}
	}
	return t
}

func solvePass(jd, lat float64, p Params, asr AsrMethod, prev rawTimes) rawTimes {
	var off rawTimes
	for i, h := range prev {
		if math.IsNaN(h) {
			h = seedTimes[i]
		}
		off[i] = h / 24
	}

	var t rawTimes
	t[Fajr] = solveAngle(180-p.Fajr, off[Fajr], lat, jd)
	t[Sunrise] = solveAngle(180-horizonAngle, off[Sunrise], lat, jd)
	t[Dhuhr] = astro.Midday(off[Dhuhr], jd)
	t[Asr] = nanOnError(astro.AsrTime(asr.ShadowStep(), off[Asr], lat, jd))
	t[Sunset] = solveAngle(horizonAngle, off[Sunset], lat, jd)
	t[Maghrib] = solveAngle(p.Maghrib.target(), off[Maghrib], lat, jd)
	t[Isha] = solveAngle(p.Isha.target(), off[Isha], lat, jd)
	return t
}

// solveAngle keeps an unreachable event as NaN so the high latitude rule
// can still place it.
func solveAngle(angle, offset, lat, jd float64) float64 {
	return nanOnError(astro.TimeForAngle(angle, offset, lat, jd))
}

func nanOnError(h float64, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return h
}

// target is the angle solved for p. Fixed intervals are placed later, so
// they are solved at sunset.
func (p Param) target() float64 {
	if p.Minutes {
		return horizonAngle
	}
	return p.Value
}

func maxDelta(a, b rawTimes) float64 {
	var d float64
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		d = math.Max(d, math.Abs(a[i]-b[i]))
	}
	return d
}

// shiftZone converts local solar time to the configured zone.
func (t *rawTimes) shiftZone(hours, dhuhr float64) {
	for i := range t {
		t[i] += hours
	}
	t[Dhuhr] += dhuhr
}

func (t *rawTimes) applyIntervals(p Params) {
	if p.Maghrib.Minutes {
		t[Maghrib] = t[Sunset] + p.Maghrib.Value/60
	}
	if p.Isha.Minutes {
		t[Isha] = t[Maghrib] + p.Isha.Value/60
	}
}

func (t *rawTimes) applyCorrection(c Correction) {
	for i := range t {
		t[i] += c.Hours(Event(i))
	}
}

// applyHighLatitude bounds Fajr before sunrise and Maghrib and Isha after
// sunset to a portion of the night. Unreachable (NaN) events take the bound.
func (t *rawTimes) applyHighLatitude(p Params, rule HighLatitudeRule) {
	if rule == NoAdjustment {
		return
	}
	night := astro.HourDiff(t[Sunset], t[Sunrise])

	fajr := rule.nightPortion(p.Fajr) * night
	if math.IsNaN(t[Fajr]) || astro.HourDiff(t[Fajr], t[Sunrise]) > fajr {
		t[Fajr] = t[Sunrise] - fajr
	}

	ishaAngle := p.Isha.Value
	if p.Isha.Minutes {
		ishaAngle = fixedIshaAngle
	}
	isha := rule.nightPortion(ishaAngle) * night
	if math.IsNaN(t[Isha]) || astro.HourDiff(t[Sunset], t[Isha]) > isha {
		t[Isha] = t[Sunset] + isha
	}

	maghribAngle := p.Maghrib.Value
	if p.Maghrib.Minutes {
		maghribAngle = fixedMaghribAngle
	}
	maghrib := rule.nightPortion(maghribAngle) * night
	if math.IsNaN(t[Maghrib]) || astro.HourDiff(t[Sunset], t[Maghrib]) > maghrib {
		t[Maghrib] = t[Sunset] + maghrib
	}
}

func (t *rawTimes) format(date time.Time, f TimeFormat) (Day, error) {
	times := make([]Time, numEvents)
	for i, h := range t {
		h = astro.FixHour(h)
		s, err := FormatHours(h, f)
		if err != nil {
			return Day{}, fmt.Errorf("%s %s: %w", date.Format(time.DateOnly), Event(i), err)
		}
		times[i] = Time{Event: Event(i), Hours: h, Formatted: s}
	}
	return Day{Date: date, Times: times}, nil
}
