package services

import (
	"sort"
	"time"
)

// day normalizes a timestamp to its calendar date (UTC midnight), so dates
// coming from DATE columns and from time.Now compare with Equal.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func uniqueDays(dates []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		dd := day(d)
		if _, ok := seen[dd]; ok {
			continue
		}
		seen[dd] = struct{}{}
		out = append(out, dd)
	}
	return out
}

// CurrentStreak returns the length of the consecutive-day run of completion
// dates ending today or yesterday, relative to the supplied today.
//
// A run whose latest day is yesterday still counts as "current": the user
// has not broken the streak until today ends without a completion. This
// matches the dashboard's long-standing behavior and is intentional, even
// though it makes "current" slightly ambiguous on the day after a run ends.
func CurrentStreak(dates []time.Time, today time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	td := day(today)
	yd := td.AddDate(0, 0, -1)
	if !days[0].Equal(td) && !days[0].Equal(yd) {
		return 0
	}

	streak := 1
	last := days[0]
	for _, d := range days[1:] {
		if !d.Equal(last.AddDate(0, 0, -1)) {
			break
		}
		streak++
		last = d
	}
	return streak
}

// LongestStreak returns the longest consecutive-day run ever observed in the
// completion dates.
func LongestStreak(dates []time.Time) int {
	days := uniqueDays(dates)
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}
