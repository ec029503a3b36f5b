package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focustrack/internal/models"
)

type fakeStatsStore struct {
	total, completed int64
	timeSpentMS      int64
	dates            []time.Time
	byDay            []models.DayProductivity
	monthly          []models.MonthActivity
}

func (f *fakeStatsStore) TaskCounts(ctx context.Context, ownerID int64) (int64, int64, error) {
	return f.total, f.completed, nil
}

func (f *fakeStatsStore) TotalTimeSpent(ctx context.Context, ownerID int64) (int64, error) {
	return f.timeSpentMS, nil
}

func (f *fakeStatsStore) CompletionDates(ctx context.Context, ownerID int64) ([]time.Time, error) {
	return f.dates, nil
}

func (f *fakeStatsStore) ProductivityByDay(ctx context.Context, ownerID int64) ([]models.DayProductivity, error) {
	return f.byDay, nil
}

func (f *fakeStatsStore) MonthlyActivity(ctx context.Context, ownerID int64, months int) ([]models.MonthActivity, error) {
	return f.monthly, nil
}

func unlockedNames(as []models.Achievement) []string {
	var names []string
	for _, a := range as {
		if a.Unlocked {
			names = append(names, a.Name)
		}
	}
	return names
}

func TestAchievements_Thresholds(t *testing.T) {
	assert.Empty(t, unlockedNames(Achievements(0, 0, 0)))

	assert.Equal(t, []string{"First Step"}, unlockedNames(Achievements(1, 0, 0)))

	assert.Equal(t,
		[]string{"First Step", "Getting Started", "Focused Hour", "Consistent"},
		unlockedNames(Achievements(10, 1, 3)))

	all := Achievements(100, 100, 30)
	for _, a := range all {
		assert.True(t, a.Unlocked, a.Name)
	}
	assert.Len(t, all, 10)
}

func TestAchievements_Deterministic(t *testing.T) {
	first := Achievements(42, 11.5, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Achievements(42, 11.5, 5))
	}
}

func TestAnalytics_Composition(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStatsStore{
		total:       20,
		completed:   12,
		timeSpentMS: 5_430_000, // 1.5083h -> 1.5 rounded
		dates:       []time.Time{day(now), day(now).AddDate(0, 0, -1)},
		byDay:       []models.DayProductivity{{DayName: "Friday", TasksCompleted: 4, TimeSpent: 100}},
		monthly:     []models.MonthActivity{{Month: "2025-03", TasksCompleted: 12, TimeSpent: 5_430_000}},
	}
	svc := NewStatsService(store).(*statsService)
	svc.now = func() time.Time { return now }

	report, err := svc.Analytics(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(20), report.TotalTasks)
	assert.Equal(t, int64(12), report.CompletedTasks)
	assert.Equal(t, 1.5, report.TotalTimeHours)
	assert.Equal(t, 2, report.CurrentStreak)
	assert.Equal(t, store.byDay, report.ProductivityByDay)
	assert.Equal(t, store.monthly, report.MonthlyActivity)
	assert.Equal(t,
		[]string{"First Step", "Getting Started", "Focused Hour"},
		unlockedNames(report.Achievements))
}

func TestProfileStats_StreaksAndCount(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStatsStore{
		total:       5,
		completed:   3,
		timeSpentMS: 7_200_000, // 2h
		// current run of 2 ending today, older run of 3
		dates: []time.Time{
			day(now), day(now).AddDate(0, 0, -1),
			day(now).AddDate(0, 0, -5), day(now).AddDate(0, 0, -6), day(now).AddDate(0, 0, -7),
		},
	}
	svc := NewStatsService(store).(*statsService)
	svc.now = func() time.Time { return now }

	stats, err := svc.ProfileStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 3, stats.LongestStreak)
	assert.Equal(t, 2.0, stats.TotalHours)
	// First Step + Focused Hour
	assert.Equal(t, 2, stats.AchievementsCount)
}
