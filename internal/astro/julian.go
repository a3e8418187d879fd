package astro

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// JulianDate returns the Julian Date at 0h UT of a Gregorian calendar day,
// using the Meeus form (chapter 7).
func JulianDate(year int, month time.Month, day int) float64 {
	return julian.CalendarGregorianToJD(year, int(month), float64(day))
}

// LocalJulianDate returns JulianDate shifted by the longitude, so that a day
// fraction added to it is measured from local solar midnight.
func LocalJulianDate(year int, month time.Month, day int, longitude float64) float64 {
	return JulianDate(year, month, day) - longitude/(15*24)
}
