// utils/dates.go
package utils

import (
	"math"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysBetween counts calendar days from start to end. Rounding absorbs the
// 23- and 25-hour days around DST transitions.
func DaysBetween(start, end time.Time) int {
	start = BeginningOfDay(start)
	end = BeginningOfDay(end)
	return int(math.Round(end.Sub(start).Hours() / 24))
}

// ParseDateRange interprets the start/end query values (YYYY-MM-DD) as an
// inclusive window: start of day for start, end of day for end. Missing
// values default to the last 30 days.
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now()
	start := BeginningOfDay(now.AddDate(0, 0, -30))
	end := EndOfDay(now)

	if startStr != "" {
		t, err := time.ParseInLocation("2006-01-02", startStr, now.Location())
		if err != nil {
			return start, end, err
		}
		start = BeginningOfDay(t)
	}
	if endStr != "" {
		t, err := time.ParseInLocation("2006-01-02", endStr, now.Location())
		if err != nil {
			return start, end, err
		}
		end = EndOfDay(t)
	}
	return start, end, nil
}
