package astro

// j2000 is the Julian Date of the J2000.0 epoch.
const j2000 = 2451545.0

// SunPosition returns the solar declination in degrees and the equation of
// time in hours for the given Julian Date. The equation of time is folded
// into [-12, 12).
func SunPosition(jd float64) (declination, equationOfTime float64) {
	d := jd - j2000

	g := FixAngle(357.529 + 0.98560028*d)              // mean anomaly
	q := FixAngle(280.459 + 0.98564736*d)              // mean longitude
	l := FixAngle(q + 1.915*dsin(g) + 0.020*dsin(2*g)) // apparent longitude
	e := 23.439 - 0.00000036*d                         // obliquity

	declination = darcsin(dsin(e) * dsin(l))
	ra := FixHour(darctan2(dcos(e)*dsin(l), dcos(l)) / 15)

	equationOfTime = q/15 - ra
	switch {
	case equationOfTime >= 12:
		equationOfTime -= 24
	case equationOfTime < -12:
		equationOfTime += 24
	}
	return declination, equationOfTime
}

// Declination returns the solar declination in degrees at jd.
func Declination(jd float64) float64 {
	d, _ := SunPosition(jd)
	return d
}

// EquationOfTime returns the equation of time in hours at jd.
func EquationOfTime(jd float64) float64 {
	_, eqt := SunPosition(jd)
	return eqt
}
