package services

import (
	"context"
	"math"
	"time"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

const msPerHour = 3_600_000

// achievementDefs is the fixed, ordered threshold table. Rules are simple
// monotonic checks against (completed tasks, total hours, current streak).
var achievementDefs = []struct {
	name, description, icon string
	unlocked                func(completed int64, hours float64, streak int) bool
}{
	{"First Step", "Complete your first task", "<i class='fas fa-bullseye'></i>",
		func(c int64, _ float64, _ int) bool { return c >= 1 }},
	{"Getting Started", "Complete 10 tasks", "<i class='fas fa-chart-line'></i>",
		func(c int64, _ float64, _ int) bool { return c >= 10 }},
	{"Productive", "Complete 50 tasks", "<i class='fas fa-rocket'></i>",
		func(c int64, _ float64, _ int) bool { return c >= 50 }},
	{"Task Master", "Complete 100 tasks", "<i class='fas fa-crown'></i>",
		func(c int64, _ float64, _ int) bool { return c >= 100 }},
	{"Focused Hour", "Work for 1 hour total", "<i class='fas fa-clock'></i>",
		func(_ int64, h float64, _ int) bool { return h >= 1 }},
	{"Dedicated", "Work for 10 hours total", "<i class='fas fa-dumbbell'></i>",
		func(_ int64, h float64, _ int) bool { return h >= 10 }},
	{"Century Club", "Work for 100 hours total", "<i class='fas fa-trophy'></i>",
		func(_ int64, h float64, _ int) bool { return h >= 100 }},
	{"Consistent", "3-day streak", "<i class='fas fa-fire'></i>",
		func(_ int64, _ float64, s int) bool { return s >= 3 }},
	{"Weekly Warrior", "7-day streak", "<i class='fas fa-bolt'></i>",
		func(_ int64, _ float64, s int) bool { return s >= 7 }},
	{"Monthly Master", "30-day streak", "<i class='fas fa-star'></i>",
		func(_ int64, _ float64, s int) bool { return s >= 30 }},
}

// Achievements evaluates the threshold table. Pure: identical inputs always
// yield the identical set, independent of prior calls.
func Achievements(completedTasks int64, totalHours float64, streak int) []models.Achievement {
	out := make([]models.Achievement, 0, len(achievementDefs))
	for _, d := range achievementDefs {
		out = append(out, models.Achievement{
			Name:        d.name,
			Description: d.description,
			Icon:        d.icon,
			Unlocked:    d.unlocked(completedTasks, totalHours, streak),
		})
	}
	return out
}

// StatsService composes counts, accumulated time, streaks and achievements
// into the analytics and profile views. It reads the same task records as the
// timer engine but never writes.
type StatsService interface {
	Analytics(ctx context.Context, ownerID int64) (*models.AnalyticsReport, error)
	ProfileStats(ctx context.Context, ownerID int64) (*models.ProfileStats, error)
	CurrentStreak(ctx context.Context, ownerID int64) (int, error)
}

type statsService struct {
	repo repositories.StatsRepository
	now  func() time.Time
}

func NewStatsService(repo repositories.StatsRepository) StatsService {
	return &statsService{repo: repo, now: time.Now}
}

func roundHours(ms int64) float64 {
	return math.Round(float64(ms)/msPerHour*10) / 10
}

func (s *statsService) Analytics(ctx context.Context, ownerID int64) (*models.AnalyticsReport, error) {
	total, completed, err := s.repo.TaskCounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	totalMS, err := s.repo.TotalTimeSpent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dates, err := s.repo.CompletionDates(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	byDay, err := s.repo.ProductivityByDay(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	monthly, err := s.repo.MonthlyActivity(ctx, ownerID, 12)
	if err != nil {
		return nil, err
	}

	hours := roundHours(totalMS)
	streak := CurrentStreak(dates, s.now())

	return &models.AnalyticsReport{
		TotalTasks:        total,
		CompletedTasks:    completed,
		TotalTimeHours:    hours,
		CurrentStreak:     streak,
		ProductivityByDay: byDay,
		MonthlyActivity:   monthly,
		Achievements:      Achievements(completed, hours, streak),
	}, nil
}

func (s *statsService) ProfileStats(ctx context.Context, ownerID int64) (*models.ProfileStats, error) {
	total, completed, err := s.repo.TaskCounts(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	totalMS, err := s.repo.TotalTimeSpent(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	dates, err := s.repo.CompletionDates(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	hours := roundHours(totalMS)
	streak := CurrentStreak(dates, s.now())

	unlocked := 0
	for _, a := range Achievements(completed, hours, streak) {
		if a.Unlocked {
			unlocked++
		}
	}

	return &models.ProfileStats{
		TotalTasks:        total,
		CompletedTasks:    completed,
		TotalHours:        hours,
		CurrentStreak:     streak,
		LongestStreak:     LongestStreak(dates),
		AchievementsCount: unlocked,
	}, nil
}

func (s *statsService) CurrentStreak(ctx context.Context, ownerID int64) (int, error) {
	dates, err := s.repo.CompletionDates(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return CurrentStreak(dates, s.now()), nil
}
