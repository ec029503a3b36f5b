package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(daysAgo int) time.Time {
	return time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -daysAgo)
}

var today = d(0)

func TestCurrentStreak_Empty(t *testing.T) {
	assert.Equal(t, 0, CurrentStreak(nil, today))
	assert.Equal(t, 0, LongestStreak(nil))
}

func TestCurrentStreak_SingleCompletionToday(t *testing.T) {
	assert.Equal(t, 1, CurrentStreak([]time.Time{d(0)}, today))
}

func TestCurrentStreak_ThreeConsecutiveDays(t *testing.T) {
	dates := []time.Time{d(0), d(1), d(2)}
	assert.Equal(t, 3, CurrentStreak(dates, today))
	assert.Equal(t, 3, LongestStreak(dates))
}

func TestCurrentStreak_GapBeforeYesterday(t *testing.T) {
	// neither today nor yesterday completed: streak is over
	dates := []time.Time{d(2), d(3)}
	assert.Equal(t, 0, CurrentStreak(dates, today))
	assert.Equal(t, 2, LongestStreak(dates))
}

func TestCurrentStreak_RunEndingYesterday(t *testing.T) {
	// a run that stopped yesterday still counts as current; the user can
	// keep it alive by completing something today
	dates := []time.Time{d(1), d(2), d(3)}
	assert.Equal(t, 3, CurrentStreak(dates, today))
}

func TestCurrentStreak_StopsAtFirstGap(t *testing.T) {
	dates := []time.Time{d(0), d(1), d(3), d(4), d(5)}
	assert.Equal(t, 2, CurrentStreak(dates, today))
	assert.Equal(t, 3, LongestStreak(dates))
}

func TestCurrentStreak_DuplicateDatesIgnored(t *testing.T) {
	dates := []time.Time{d(0), d(0), d(1), d(1), d(1)}
	assert.Equal(t, 2, CurrentStreak(dates, today))
	assert.Equal(t, 2, LongestStreak(dates))
}

func TestCurrentStreak_TimestampsNormalizeToDays(t *testing.T) {
	// dates carrying a time-of-day component count as their calendar day
	late := d(1).Add(23*time.Hour + 59*time.Minute)
	assert.Equal(t, 1, CurrentStreak([]time.Time{late}, today.Add(9*time.Hour)))
}

func TestLongestStreak_UnorderedInput(t *testing.T) {
	dates := []time.Time{d(3), d(9), d(1), d(2), d(8), d(10)}
	assert.Equal(t, 3, LongestStreak(dates))
}
