package prayer

import "github.com/ID-Brains/islam-station/internal/domain/geo"

// PrayerNames lists every computed event in canonical chronological order.
var PrayerNames = []string{"imsak", "fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"}

// ObservedPrayers lists the six observable prayers the countdown considers.
// Imsak is a fasting marker, not a prayer, so it is excluded.
var ObservedPrayers = []string{"fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"}

// Schedule holds one day of prayer times for a location. Times are "HH:MM"
// strings in the requested UTC-offset clock.
type Schedule struct {
	Date     string            `json:"date"`
	Method   string            `json:"method"`
	Location geo.Coordinate    `json:"location"`
	Times    map[string]string `json:"times"`
	// Clamped reports that at least one hour angle fell outside the acos
	// domain (permanent polar day or night) and was clamped to a boundary
	// value. The schedule is still well formed but approximate.
	Clamped bool `json:"clamped,omitempty"`
	// Source distinguishes locally computed schedules from ones fetched from
	// the AlAdhan API.
	Source string `json:"source,omitempty"`
}

// NextInfo describes the upcoming prayer relative to a reference instant.
type NextInfo struct {
	Prayer           string `json:"prayer"`
	Time             string `json:"time"`
	MinutesUntil     int    `json:"minutes_until"`
	HoursUntil       int    `json:"hours_until"`
	RemainingMinutes int    `json:"remaining_minutes"`
	Tomorrow         bool   `json:"tomorrow,omitempty"`
}
