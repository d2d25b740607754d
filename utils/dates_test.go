package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRangeInclusiveBoundaries(t *testing.T) {
	start, end, err := ParseDateRange("2025-03-01", "2025-03-31")
	require.NoError(t, err)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 0, start.Minute())
	assert.Equal(t, 1, start.Day())

	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 31, end.Day())
}

func TestParseDateRangeRejectsGarbage(t *testing.T) {
	_, _, err := ParseDateRange("not-a-date", "")
	assert.Error(t, err)

	_, _, err = ParseDateRange("", "31-03-2025")
	assert.Error(t, err)
}

func TestParseDateRangeDefaultsToLast30Days(t *testing.T) {
	start, end, err := ParseDateRange("", "")
	require.NoError(t, err)

	assert.True(t, start.Before(end))
	assert.InDelta(t, 30, DaysBetween(start, end), 1)
}

func TestDaysBetween(t *testing.T) {
	a := time.Date(2025, 3, 1, 23, 0, 0, 0, time.UTC)
	b := time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, DaysBetween(a, b), "crosses midnight, so one day apart")
	assert.Equal(t, 0, DaysBetween(a, a))
}

func TestDaysBetweenAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	// 2025-03-09 is a 23-hour day (spring forward); truncating division
	// would report 1 here instead of 2.
	a := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	b := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	assert.Equal(t, 2, DaysBetween(a, b))
}
