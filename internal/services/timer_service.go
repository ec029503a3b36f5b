package services

import (
	"context"
	"errors"
	"log"
	"time"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

var (
	// ErrNoActiveTimer is returned by pause when the task has no running
	// timer or the supplied session token does not match.
	ErrNoActiveTimer = errors.New("no active timer found for this task")
	// ErrTaskCompleted is returned by start on a completed task.
	ErrTaskCompleted = errors.New("cannot start timer for completed task")
	// ErrSessionMismatch is returned by stop when the stored session token
	// does not match (including a task already completed, whose token was
	// cleared by the first stop).
	ErrSessionMismatch = errors.New("task not found or session mismatch")
)

// TimerService owns the state machine over a task's timer fields. Every
// mutation runs as one read-validate-write transaction; the one-running-task
// invariant is only as strong as the store's row locking, there is no
// in-process lock.
type TimerService interface {
	Start(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerStartResult, error)
	Pause(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error)
	Stop(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error)
	Sync(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerSyncResult, error)
	Cleanup(ctx context.Context, ownerID, taskID int64, sessionID string) error
	Status(ctx context.Context, ownerID, taskID int64) (*models.TimerStatus, error)
}

type timerService struct {
	repo repositories.TimerRepository
	now  func() time.Time
}

func NewTimerService(repo repositories.TimerRepository) TimerService {
	return &timerService{repo: repo, now: time.Now}
}

// elapsedMS floors the wall-clock distance to whole milliseconds. A negative
// distance (clock went backwards) counts as zero.
func elapsedMS(start, now time.Time) int64 {
	ms := now.Sub(start).Milliseconds()
	if ms < 0 {
		return 0
	}
	return ms
}

// Start begins a new timer session on the task. Any other running task of the
// owner is paused in the same transaction, which also clears timer fields
// left behind by a crashed session. Start always wins: it overwrites whatever
// session token the task carried before.
func (s *timerService) Start(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerStartResult, error) {
	var res *models.TimerStartResult
	err := s.repo.InTx(ctx, func(tx repositories.TimerTx) error {
		task, err := tx.TaskForUpdate(ctx, taskID, ownerID)
		if err != nil {
			return err
		}
		if task.Status == models.StatusCompleted {
			return ErrTaskCompleted
		}
		if err := tx.PauseOtherRunning(ctx, ownerID, taskID); err != nil {
			return err
		}

		now := s.now()
		sid := sessionID
		err = tx.ApplyTimer(ctx, taskID, ownerID, models.TimerUpdate{
			Status:       models.StatusInProgress,
			TimeSpent:    task.TimeSpent,
			StartTime:    &now,
			SessionID:    &sid,
			LastSyncTime: &now,
		})
		if err != nil {
			return err
		}
		res = &models.TimerStartResult{
			Status:         "success",
			TimerStartTime: now,
			SessionID:      sessionID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[timer][start][ok] owner=%d task=%d session=%s", ownerID, taskID, sessionID)
	return res, nil
}

// Pause folds the running session's elapsed time into time_spent and clears
// the timer fields.
func (s *timerService) Pause(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error) {
	var res *models.TimerOpResult
	err := s.repo.InTx(ctx, func(tx repositories.TimerTx) error {
		task, err := tx.TaskForUpdate(ctx, taskID, ownerID)
		if err != nil {
			return err
		}
		if task.TimerSessionID == nil || *task.TimerSessionID != sessionID || task.TimerStartTime == nil {
			return ErrNoActiveTimer
		}

		now := s.now()
		elapsed := elapsedMS(*task.TimerStartTime, now)
		newSpent := task.TimeSpent + elapsed

		err = tx.ApplyTimer(ctx, taskID, ownerID, models.TimerUpdate{
			Status:       models.StatusPaused,
			TimeSpent:    newSpent,
			LastSyncTime: &now,
		})
		if err != nil {
			return err
		}
		res = &models.TimerOpResult{Status: "success", TimeSpent: newSpent, ElapsedInSession: elapsed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[timer][pause][ok] owner=%d task=%d spent=%dms (+%dms)", ownerID, taskID, res.TimeSpent, res.ElapsedInSession)
	return res, nil
}

// Stop completes the task. The session token must match, but the task need
// not be running: a paused task with a live token stops with zero session
// elapsed. This is the only timer path that marks a task completed; it also
// appends the completion line to the activity log.
func (s *timerService) Stop(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerOpResult, error) {
	var res *models.TimerOpResult
	err := s.repo.InTx(ctx, func(tx repositories.TimerTx) error {
		task, err := tx.TaskForUpdate(ctx, taskID, ownerID)
		if err != nil {
			return err
		}
		if task.TimerSessionID == nil || *task.TimerSessionID != sessionID {
			return ErrSessionMismatch
		}

		now := s.now()
		var elapsed int64
		if task.TimerStartTime != nil {
			elapsed = elapsedMS(*task.TimerStartTime, now)
		}
		newSpent := task.TimeSpent + elapsed

		err = tx.ApplyTimer(ctx, taskID, ownerID, models.TimerUpdate{
			Status:       models.StatusCompleted,
			TimeSpent:    newSpent,
			LastSyncTime: &now,
		})
		if err != nil {
			return err
		}
		id := taskID
		if err := tx.LogActivity(ctx, ownerID, &id, "Completed task: "+task.Title, now); err != nil {
			return err
		}
		res = &models.TimerOpResult{Status: "success", TimeSpent: newSpent, ElapsedInSession: elapsed}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[timer][stop][ok] owner=%d task=%d spent=%dms (+%dms)", ownerID, taskID, res.TimeSpent, res.ElapsedInSession)
	return res, nil
}

// Sync is the client heartbeat. A stale session token yields a
// session_invalid result, not an error, and mutates nothing; otherwise only
// last_sync_time is written. time_spent is never touched here.
func (s *timerService) Sync(ctx context.Context, ownerID, taskID int64, sessionID string) (*models.TimerSyncResult, error) {
	task, err := s.repo.TaskByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	if task.TimerSessionID == nil || *task.TimerSessionID != sessionID {
		return &models.TimerSyncResult{
			Status:  "session_invalid",
			Message: "Timer session is no longer valid",
		}, nil
	}

	now := s.now()
	var elapsed int64
	if task.TimerStartTime != nil && task.Status == models.StatusInProgress {
		elapsed = elapsedMS(*task.TimerStartTime, now)
	}
	if err := s.repo.TouchSync(ctx, taskID, ownerID, now); err != nil {
		return nil, err
	}
	return &models.TimerSyncResult{
		Status:                "success",
		TaskStatus:            task.Status,
		TimeSpent:             task.TimeSpent,
		CurrentSessionElapsed: elapsed,
		TotalDisplayTime:      task.TimeSpent + elapsed,
		TimerStartTime:        task.TimerStartTime,
	}, nil
}

// Cleanup reconciles a client that lost track of its session (page reload
// without local state). If the task still runs under the given session it is
// paused and its timer fields cleared; no elapsed time is credited. Safe to
// call repeatedly, succeeds even when no timer is active.
func (s *timerService) Cleanup(ctx context.Context, ownerID, taskID int64, sessionID string) error {
	return s.repo.InTx(ctx, func(tx repositories.TimerTx) error {
		task, err := tx.TaskForUpdate(ctx, taskID, ownerID)
		if err != nil {
			return err
		}
		if task.TimerSessionID == nil || *task.TimerSessionID != sessionID {
			return nil
		}
		status := task.Status
		if status == models.StatusInProgress {
			status = models.StatusPaused
		}
		return tx.ApplyTimer(ctx, taskID, ownerID, models.TimerUpdate{
			Status:    status,
			TimeSpent: task.TimeSpent,
		})
	})
}

// Status is the read-only projection: same elapsed computation as Sync but
// without any write.
func (s *timerService) Status(ctx context.Context, ownerID, taskID int64) (*models.TimerStatus, error) {
	task, err := s.repo.TaskByID(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}
	var elapsed int64
	if task.TimerStartTime != nil && task.Status == models.StatusInProgress {
		elapsed = elapsedMS(*task.TimerStartTime, s.now())
	}
	return &models.TimerStatus{
		TaskID:                task.ID,
		Status:                task.Status,
		TimeSpent:             task.TimeSpent,
		CurrentSessionElapsed: elapsed,
		TotalDisplayTime:      task.TimeSpent + elapsed,
		TimerStartTime:        task.TimerStartTime,
		SessionID:             task.TimerSessionID,
		Title:                 task.Title,
	}, nil
}
