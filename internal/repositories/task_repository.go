package repositories

import (
	"context"
	"database/sql"
	"errors"

	"focustrack/internal/models"
)

// ErrTaskNotFound covers both a missing id and an owner mismatch, so the API
// cannot be used to probe for other users' task ids.
var ErrTaskNotFound = errors.New("task not found")

const taskColumns = `id, user_id, entry_date::text, title, description, start_time, duration_minutes,
       status, time_spent, timer_start_time, timer_session_id, last_sync_time, created_at, updated_at`

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id, ownerID int64) (*models.Task, error)
	ListByDate(ctx context.Context, ownerID int64, entryDate string) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	UpdateStatusAndTime(ctx context.Context, id, ownerID int64, status models.TaskStatus, timeSpent int64) error
	Delete(ctx context.Context, id, ownerID int64) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(
		&task.ID, &task.OwnerID, &task.EntryDate, &task.Title, &task.Description,
		&task.StartTime, &task.DurationMinutes, &task.Status, &task.TimeSpent,
		&task.TimerStartTime, &task.TimerSessionID, &task.LastSyncTime,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO user_tasks (
			user_id, entry_date, title, description, start_time, duration_minutes,
			status, time_spent, created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.OwnerID, task.EntryDate, task.Title, task.Description,
		task.StartTime, task.DurationMinutes, task.Status, task.TimeSpent,
		task.CreatedAt, task.UpdatedAt,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM user_tasks WHERE id = $1 AND user_id = $2`
	return scanTask(r.db.QueryRowContext(ctx, query, id, ownerID))
}

func (r *taskRepository) ListByDate(ctx context.Context, ownerID int64, entryDate string) ([]models.Task, error) {
	// scheduled tasks first, then by creation order
	query := `SELECT ` + taskColumns + `
		FROM user_tasks
		WHERE user_id = $1 AND entry_date = $2
		ORDER BY CASE WHEN start_time IS NULL THEN 1 ELSE 0 END, start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query, ownerID, entryDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE user_tasks SET
			title=$1, description=$2, start_time=$3, duration_minutes=$4,
			status=$5, time_spent=$6, updated_at=$7
		WHERE id=$8 AND user_id=$9`
	res, err := r.db.ExecContext(ctx, query,
		task.Title, task.Description, task.StartTime, task.DurationMinutes,
		task.Status, task.TimeSpent, task.UpdatedAt, task.ID, task.OwnerID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *taskRepository) UpdateStatusAndTime(ctx context.Context, id, ownerID int64, status models.TaskStatus, timeSpent int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_tasks SET status=$1, time_spent=$2, updated_at=NOW() WHERE id=$3 AND user_id=$4`,
		status, timeSpent, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *taskRepository) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_tasks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
