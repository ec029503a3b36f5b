package repositories

import (
	"context"
	"database/sql"
	"time"

	"focustrack/internal/models"
)

// TimerTx is the set of row operations available inside one timer
// transaction. TaskForUpdate locks the row it reads, so the
// one-running-task-per-owner check and the following writes are atomic.
type TimerTx interface {
	TaskForUpdate(ctx context.Context, id, ownerID int64) (*models.Task, error)
	PauseOtherRunning(ctx context.Context, ownerID, exceptID int64) error
	ApplyTimer(ctx context.Context, id, ownerID int64, u models.TimerUpdate) error
	LogActivity(ctx context.Context, ownerID int64, taskID *int64, message string, at time.Time) error
}

// TimerRepository backs the timer session engine. All mutating operations go
// through InTx; Sync and Status read outside a write transaction and only
// touch last_sync_time.
type TimerRepository interface {
	InTx(ctx context.Context, fn func(TimerTx) error) error
	TaskByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	TouchSync(ctx context.Context, id, ownerID int64, at time.Time) error
}

type timerRepository struct {
	db *sql.DB
}

func NewTimerRepository(db *sql.DB) TimerRepository {
	return &timerRepository{db: db}
}

func (r *timerRepository) InTx(ctx context.Context, fn func(TimerTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&timerTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *timerRepository) TaskByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM user_tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *timerRepository) TouchSync(ctx context.Context, id, ownerID int64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_tasks SET last_sync_time = $1 WHERE id = $2 AND user_id = $3`,
		at, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

type timerTx struct {
	tx *sql.Tx
}

func (t *timerTx) TaskForUpdate(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM user_tasks WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return scanTask(t.tx.QueryRowContext(ctx, query, id, ownerID))
}

// PauseOtherRunning pauses every other task of the owner that still carries
// timer fields. This is also the stale-session self-heal: a task left
// in-progress by a crashed client gets cleaned up by the next start.
func (t *timerTx) PauseOtherRunning(ctx context.Context, ownerID, exceptID int64) error {
	_, err := t.tx.ExecContext(ctx, `
		UPDATE user_tasks SET
			status = CASE WHEN status = 'in-progress' THEN 'paused' ELSE status END,
			timer_start_time = NULL,
			timer_session_id = NULL,
			last_sync_time = NULL,
			updated_at = NOW()
		WHERE user_id = $1 AND id <> $2
		  AND (timer_start_time IS NOT NULL OR timer_session_id IS NOT NULL)`,
		ownerID, exceptID)
	return err
}

func (t *timerTx) ApplyTimer(ctx context.Context, id, ownerID int64, u models.TimerUpdate) error {
	res, err := t.tx.ExecContext(ctx, `
		UPDATE user_tasks SET
			status = $1,
			time_spent = $2,
			timer_start_time = $3,
			timer_session_id = $4,
			last_sync_time = $5,
			updated_at = NOW()
		WHERE id = $6 AND user_id = $7`,
		u.Status, u.TimeSpent, u.StartTime, u.SessionID, u.LastSyncTime, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (t *timerTx) LogActivity(ctx context.Context, ownerID int64, taskID *int64, message string, at time.Time) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO activity_log (user_id, message, timestamp, task_db_id) VALUES ($1, $2, $3, $4)`,
		ownerID, message, at, taskID)
	return err
}
