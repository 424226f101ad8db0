package prayer

import (
	"strconv"
	"strings"
	"time"

	"github.com/ID-Brains/islam-station/pkg/util"
)

const minutesPerDay = 24 * 60

// NextPrayer scans a day's times for the first prayer after now and returns
// it with a countdown. When every prayer has passed, tomorrow's fajr is
// returned with the wraparound countdown. A nil result means the times map
// held no parseable entries, which a well formed Schedule never produces.
func NextPrayer(times map[string]string, now time.Time) *NextInfo {
	nowMinutes := util.MinutesSinceMidnight(now)

	type entry struct {
		name    string
		minutes int
	}
	entries := make([]entry, 0, len(ObservedPrayers))
	for _, name := range ObservedPrayers {
		minutes, ok := parseClock(times[name])
		if !ok {
			continue
		}
		entries = append(entries, entry{name: name, minutes: minutes})
	}
	if len(entries) == 0 {
		return nil
	}

	for _, e := range entries {
		if e.minutes > nowMinutes {
			return newNextInfo(e.name, times[e.name], e.minutes-nowMinutes, false)
		}
	}

	first := entries[0]
	until := (minutesPerDay - nowMinutes) + first.minutes
	return newNextInfo(first.name, times[first.name], until, true)
}

func newNextInfo(name, clock string, minutesUntil int, tomorrow bool) *NextInfo {
	return &NextInfo{
		Prayer:           name,
		Time:             clock,
		MinutesUntil:     minutesUntil,
		HoursUntil:       minutesUntil / 60,
		RemainingMinutes: minutesUntil % 60,
		Tomorrow:         tomorrow,
	}
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	h, m, ok := strings.Cut(s, ":")
	if !ok {
		return 0, false
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
