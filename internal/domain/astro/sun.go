// Package astro implements the low-precision solar position formulas used to
// schedule prayer times. Accuracy is on the order of 0.01 degrees, which is
// sufficient for clock-minute scheduling but not for astronomical work.
package astro

import (
	"math"
	"time"
)

// j2000 is the Julian day of the J2000.0 epoch (2000-01-01 12:00 TT).
const j2000 = 2451545.0

// JulianDay converts a proleptic Gregorian calendar date to a Julian day
// number using the Meeus algorithm. The time-of-day portion of t is ignored.
func JulianDay(t time.Time) float64 {
	year, month, day := t.Date()
	m := int(month)
	if m <= 2 {
		year--
		m += 12
	}
	a := math.Floor(float64(year) / 100.0)
	b := 2 - a + math.Floor(a/4.0)

	return math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + b - 1524.5
}

// Declination returns the sun's declination in degrees for the given Julian
// day: its angular position north or south of the celestial equator.
func Declination(jd float64) float64 {
	_, l, e := solarElements(jd)
	return degrees(math.Asin(math.Sin(radians(e)) * math.Sin(radians(l))))
}

// EquationOfTime returns the difference between apparent and mean solar time
// in minutes for the given Julian day.
func EquationOfTime(jd float64) float64 {
	q, l, e := solarElements(jd)

	ra := degrees(math.Atan2(math.Cos(radians(e))*math.Sin(radians(l)), math.Cos(radians(l))))

	eqt := q - ra
	eqt -= 360 * math.Floor(eqt/360)
	if eqt > 180 {
		eqt -= 360
	}
	// 360 degrees correspond to 24 hours, so one degree is four minutes.
	return eqt * 4
}

// solarElements computes the shared intermediate quantities: mean longitude q,
// apparent ecliptic longitude l and mean obliquity e, all in degrees.
func solarElements(jd float64) (q, l, e float64) {
	d := jd - j2000
	g := 357.529 + 0.98560028*d
	q = 280.459 + 0.98564736*d
	l = q + 1.915*math.Sin(radians(g)) + 0.020*math.Sin(radians(2*g))
	e = 23.439 - 0.00000036*d
	return q, l, e
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
