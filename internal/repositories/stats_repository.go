package repositories

import (
	"context"
	"database/sql"
	"time"

	"focustrack/internal/models"
)

// StatsRepository provides the read-only aggregates the analytics layer is
// built on. Everything is scoped to one owner.
type StatsRepository interface {
	TaskCounts(ctx context.Context, ownerID int64) (total, completed int64, err error)
	TotalTimeSpent(ctx context.Context, ownerID int64) (int64, error)
	CompletionDates(ctx context.Context, ownerID int64) ([]time.Time, error)
	ProductivityByDay(ctx context.Context, ownerID int64) ([]models.DayProductivity, error)
	MonthlyActivity(ctx context.Context, ownerID int64, months int) ([]models.MonthActivity, error)
}

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) TaskCounts(ctx context.Context, ownerID int64) (int64, int64, error) {
	var total, completed int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
		FROM user_tasks WHERE user_id = $1`, ownerID,
	).Scan(&total, &completed)
	return total, completed, err
}

func (r *statsRepository) TotalTimeSpent(ctx context.Context, ownerID int64) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(time_spent), 0) FROM user_tasks WHERE user_id = $1`, ownerID,
	).Scan(&total)
	return total, err
}

// CompletionDates returns the distinct calendar dates with at least one
// completed task, newest first.
func (r *statsRepository) CompletionDates(ctx context.Context, ownerID int64) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT entry_date FROM user_tasks
		WHERE user_id = $1 AND status = 'completed'
		ORDER BY entry_date DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *statsRepository) ProductivityByDay(ctx context.Context, ownerID int64) ([]models.DayProductivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			CASE EXTRACT(DOW FROM entry_date)
				WHEN 0 THEN 'Sunday'
				WHEN 1 THEN 'Monday'
				WHEN 2 THEN 'Tuesday'
				WHEN 3 THEN 'Wednesday'
				WHEN 4 THEN 'Thursday'
				WHEN 5 THEN 'Friday'
				WHEN 6 THEN 'Saturday'
			END AS day_name,
			COUNT(*) AS tasks_completed,
			COALESCE(SUM(time_spent), 0) AS time_spent
		FROM user_tasks
		WHERE user_id = $1 AND status = 'completed'
		GROUP BY EXTRACT(DOW FROM entry_date)
		ORDER BY EXTRACT(DOW FROM entry_date)`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DayProductivity
	for rows.Next() {
		var d models.DayProductivity
		if err := rows.Scan(&d.DayName, &d.TasksCompleted, &d.TimeSpent); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *statsRepository) MonthlyActivity(ctx context.Context, ownerID int64, months int) ([]models.MonthActivity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			TO_CHAR(entry_date, 'YYYY-MM') AS month,
			COUNT(*) AS tasks_completed,
			COALESCE(SUM(time_spent), 0) AS time_spent
		FROM user_tasks
		WHERE user_id = $1 AND status = 'completed'
		GROUP BY TO_CHAR(entry_date, 'YYYY-MM')
		ORDER BY month DESC
		LIMIT $2`, ownerID, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MonthActivity
	for rows.Next() {
		var m models.MonthActivity
		if err := rows.Scan(&m.Month, &m.TasksCompleted, &m.TimeSpent); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
