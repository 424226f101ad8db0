package prayer

import (
	"fmt"
	"math"
	"time"

	"github.com/ID-Brains/islam-station/internal/domain/astro"
	"github.com/ID-Brains/islam-station/internal/domain/geo"
	apperrors "github.com/ID-Brains/islam-station/pkg/errors"
	"github.com/ID-Brains/islam-station/pkg/util"
)

// sunsetAngle is the solar zenith angle of sunrise and sunset: 90 degrees
// plus atmospheric refraction and the apparent solar disk radius.
const sunsetAngle = 90.833

// imsakOffsetHours places imsak a fixed ten minutes before fajr.
const imsakOffsetHours = 10.0 / 60.0

// Calculate produces the seven daily prayer times for a location and date.
// tzOffset is the UTC offset of the requested clock in hours. adjustments
// holds optional signed per-prayer corrections in minutes, keyed by prayer
// name. The only error condition is an unvalidated method id; extreme
// latitudes degrade to clamped, approximate times instead of failing.
func Calculate(loc geo.Coordinate, date time.Time, method Method, tzOffset float64, adjustments map[string]int) (Schedule, error) {
	params, err := lookupParams(method)
	if err != nil {
		return Schedule{}, err
	}

	jd := astro.JulianDay(date)
	decl := astro.Declination(jd)
	eqt := astro.EquationOfTime(jd)

	// Solar noon anchors every other prayer.
	noon := 12 + tzOffset - loc.Longitude/15 - eqt/60

	clamped := false
	hour := func(zenith float64) (float64, bool) {
		return hourAngle(loc.Latitude, decl, zenith)
	}

	times := make(map[string]float64, len(PrayerNames))

	h, c := hour(90 + params.FajrAngle)
	clamped = clamped || c
	times["fajr"] = noon - h

	h, c = hour(sunsetAngle)
	clamped = clamped || c
	times["sunrise"] = noon - h
	sunset := noon + h

	times["dhuhr"] = noon

	h, c = hour(90 - asrAngle(loc.Latitude, decl))
	clamped = clamped || c
	times["asr"] = noon + h

	if params.MaghribAngle > 0 {
		h, c = hour(90 + params.MaghribAngle)
		clamped = clamped || c
		times["maghrib"] = noon + h
	} else {
		times["maghrib"] = sunset
	}

	if params.IshaIntervalMin > 0 {
		times["isha"] = times["maghrib"] + float64(params.IshaIntervalMin)/60
	} else {
		h, c = hour(90 + params.IshaAngle)
		clamped = clamped || c
		times["isha"] = noon + h
	}

	times["imsak"] = times["fajr"] - imsakOffsetHours

	for name, minutes := range adjustments {
		if _, ok := times[name]; ok {
			times[name] += float64(minutes) / 60
		}
	}

	formatted := make(map[string]string, len(times))
	for name, value := range times {
		formatted[name] = formatHour(value)
	}

	return Schedule{
		Date:     date.Format("2006-01-02"),
		Method:   string(method),
		Location: loc,
		Times:    formatted,
		Clamped:  clamped,
		Source:   "calculation",
	}, nil
}

// CalculateMonth produces one schedule per calendar day of the given month in
// ascending day order. The method id is validated once up front; individual
// day calculations cannot fail after that.
func CalculateMonth(loc geo.Coordinate, year int, month time.Month, method Method, tzOffset float64) ([]Schedule, error) {
	if _, err := lookupParams(method); err != nil {
		return nil, err
	}

	days := util.DaysIn(year, month)
	out := make([]Schedule, 0, days)
	for day := 1; day <= days; day++ {
		sched, err := Calculate(loc, time.Date(year, month, day, 0, 0, 0, 0, time.UTC), method, tzOffset, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, sched)
	}
	return out, nil
}

func lookupParams(method Method) (Params, error) {
	params, ok := methodParams[method]
	if !ok {
		return Params{}, apperrors.Wrap(apperrors.CodeUnknownMethod, fmt.Sprintf("unknown calculation method %q", method), nil)
	}
	return params, nil
}

// hourAngle converts a target solar zenith angle into an offset from solar
// noon in hours. When the sun never reaches the angle (polar day or night)
// the cosine falls outside [-1, 1]; it is clamped to the nearest bound, which
// yields a degenerate but well formed time, and the second return reports
// that the clamp fired.
func hourAngle(latitude, declination, zenith float64) (float64, bool) {
	latRad := radians(latitude)
	declRad := radians(declination)

	cosH := (math.Cos(radians(zenith)) - math.Sin(latRad)*math.Sin(declRad)) /
		(math.Cos(latRad) * math.Cos(declRad))

	clamped := false
	if cosH > 1 {
		cosH = 1
		clamped = true
	} else if cosH < -1 {
		cosH = -1
		clamped = true
	}

	return degrees(math.Acos(cosH)) / 15, clamped
}

// asrAngle returns the solar elevation angle of Asr using shadow-length
// factor 1 (the standard Shafi'i convention).
func asrAngle(latitude, declination float64) float64 {
	shadowRatio := 1 + math.Tan(math.Abs(radians(latitude)-radians(declination)))
	return degrees(math.Atan(1 / shadowRatio))
}

// formatHour renders a decimal hour as "HH:MM", normalizing into [0, 24) and
// rounding to the nearest minute with carry.
func formatHour(value float64) string {
	value = math.Mod(value, 24)
	if value < 0 {
		value += 24
	}

	hours := int(value)
	minutes := int(math.Round((value - float64(hours)) * 60))
	if minutes == 60 {
		hours = (hours + 1) % 24
		minutes = 0
	}

	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
