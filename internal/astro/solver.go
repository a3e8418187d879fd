package astro

import (
	"errors"
	"math"
)

// ErrAngleUnreachable is returned when the sun never reaches the requested
// zenith angle on the given day at the given latitude (polar day or night).
var ErrAngleUnreachable = errors.New("sun does not reach the requested angle")

// Midday returns the local solar noon in hours. offset is the day fraction
// at which the ephemeris is sampled.
func Midday(offset, jd float64) float64 {
	return FixHour(12 - EquationOfTime(jd+offset))
}

// TimeForAngle returns the local solar time at which the sun is at the given
// zenith-complement angle. Angles above 90 describe morning events and are
// solved before noon; all others after it.
//
// When the angle is never reached the result is NaN and the error is
// ErrAngleUnreachable.
func TimeForAngle(angle, offset, latitude, jd float64) (float64, error) {
	decl := Declination(jd + offset)
	num := -dsin(angle) - dsin(decl)*dsin(latitude)
	den := dcos(decl) * dcos(latitude)

	ratio := num / den
	if math.IsNaN(ratio) || ratio < -1 || ratio > 1 {
		return math.NaN(), ErrAngleUnreachable
	}

	noon := Midday(offset, jd)
	ha := darccos(ratio) / 15
	if angle > 90 {
		return noon - ha, nil
	}
	return noon + ha, nil
}

// AsrTime returns the local solar time of Asr, when an object's shadow
// equals shadowStep times its length plus its noon shadow. shadowStep is 1
// for the Shafii method and 2 for Hanafi.
func AsrTime(shadowStep, offset, latitude, jd float64) (float64, error) {
	decl := Declination(jd + offset)
	angle := -darccot(shadowStep + dtan(math.Abs(latitude-decl)))
	return TimeForAngle(angle, offset, latitude, jd)
}
