// Package astro implements the solar-position math behind prayer times:
// Julian dates, a low-precision solar ephemeris, and solvers for the clock
// time at which the sun reaches a given zenith angle.
//
// All angles are in degrees and all times are fractional hours. Functions
// propagate NaN instead of panicking, so callers can decide how to report
// an event that does not happen on a given day.
package astro

import "math"

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }

func dsin(d float64) float64 { return math.Sin(deg2rad(d)) }
func dcos(d float64) float64 { return math.Cos(deg2rad(d)) }
func dtan(d float64) float64 { return math.Tan(deg2rad(d)) }

func darcsin(x float64) float64     { return rad2deg(math.Asin(x)) }
func darccos(x float64) float64     { return rad2deg(math.Acos(x)) }
func darctan2(y, x float64) float64 { return rad2deg(math.Atan2(y, x)) }
func darccot(x float64) float64     { return rad2deg(math.Atan2(1, x)) }

// FixAngle normalizes an angle to [0, 360).
func FixAngle(a float64) float64 {
	return fix(a, 360)
}

// FixHour normalizes a fractional hour to [0, 24).
func FixHour(h float64) float64 {
	return fix(h, 24)
}

func fix(a, b float64) float64 {
	a -= b * math.Floor(a/b)
	if a < 0 {
		a += b
	}
	// Rounding can land exactly on b for tiny negative inputs.
	if a >= b {
		a -= b
	}
	return a
}

// HourDiff returns the forward distance in hours from a to b on a 24h clock.
func HourDiff(a, b float64) float64 {
	return FixHour(b - a)
}
