// internal/services/task_service.go
package services

import (
	"context"
	"time"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

// TaskService defines the interface for task-related business logic.
type TaskService interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	DailySummary(ctx context.Context, ownerID int64, entryDate string) (*models.DailySummary, error)
	Update(ctx context.Context, id, ownerID int64, updateData *models.Task) (*models.Task, error)
	UpdateStatusAndTime(ctx context.Context, id, ownerID int64, status models.TaskStatus, timeSpent int64) error
	Delete(ctx context.Context, id, ownerID int64) error
}

type taskService struct {
	repo     repositories.TaskRepository
	entries  repositories.EntryRepository
	activity repositories.ActivityRepository
	stats    repositories.StatsRepository
	now      func() time.Time
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(
	repo repositories.TaskRepository,
	entries repositories.EntryRepository,
	activity repositories.ActivityRepository,
	stats repositories.StatsRepository,
) TaskService {
	return &taskService{
		repo:     repo,
		entries:  entries,
		activity: activity,
		stats:    stats,
		now:      time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if task.Status == "" {
		task.Status = models.StatusPending
	}
	task.TimeSpent = 0
	now := s.now()
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) GetByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

// DailySummary bundles the tasks of one date, the day's notes and activity
// log, and the owner's current completion streak.
func (s *taskService) DailySummary(ctx context.Context, ownerID int64, entryDate string) (*models.DailySummary, error) {
	tasks, err := s.repo.ListByDate(ctx, ownerID, entryDate)
	if err != nil {
		return nil, err
	}
	notes, err := s.entries.Notes(ctx, ownerID, entryDate)
	if err != nil {
		return nil, err
	}
	activity, err := s.activity.ListByDate(ctx, ownerID, entryDate)
	if err != nil {
		return nil, err
	}
	dates, err := s.stats.CompletionDates(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []models.Task{}
	}
	if activity == nil {
		activity = []models.ActivityEntry{}
	}
	return &models.DailySummary{
		Tasks:       tasks,
		Notes:       notes,
		ActivityLog: activity,
		Streak:      CurrentStreak(dates, s.now()),
	}, nil
}

func (s *taskService) Update(ctx context.Context, id, ownerID int64, updateData *models.Task) (*models.Task, error) {
	existingTask, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	existingTask.Title = updateData.Title
	existingTask.Description = updateData.Description
	existingTask.StartTime = updateData.StartTime
	existingTask.DurationMinutes = updateData.DurationMinutes
	existingTask.Status = updateData.Status
	existingTask.TimeSpent = updateData.TimeSpent
	existingTask.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existingTask); err != nil {
		return nil, err
	}
	return existingTask, nil
}

func (s *taskService) UpdateStatusAndTime(ctx context.Context, id, ownerID int64, status models.TaskStatus, timeSpent int64) error {
	return s.repo.UpdateStatusAndTime(ctx, id, ownerID, status, timeSpent)
}

func (s *taskService) Delete(ctx context.Context, id, ownerID int64) error {
	return s.repo.Delete(ctx, id, ownerID)
}
