package repositories

import (
	"context"
	"database/sql"

	"focustrack/internal/models"
)

type ActivityRepository interface {
	Append(ctx context.Context, entry *models.ActivityEntry) error
	ListByDate(ctx context.Context, ownerID int64, entryDate string) ([]models.ActivityEntry, error)
}

type activityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, entry *models.ActivityEntry) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO activity_log (user_id, message, timestamp, task_db_id)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.OwnerID, entry.Message, entry.Timestamp, entry.TaskID,
	).Scan(&entry.ID)
}

func (r *activityRepository) ListByDate(ctx context.Context, ownerID int64, entryDate string) ([]models.ActivityEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, timestamp, task_db_id
		 FROM activity_log
		 WHERE user_id = $1 AND DATE(timestamp) = $2::date
		 ORDER BY timestamp DESC`,
		ownerID, entryDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityEntry
	for rows.Next() {
		var e models.ActivityEntry
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Message, &e.Timestamp, &e.TaskID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
