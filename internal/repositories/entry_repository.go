package repositories

import (
	"context"
	"database/sql"
)

// EntryRepository stores per-day free-form notes. Last writer wins.
type EntryRepository interface {
	SaveNotes(ctx context.Context, ownerID int64, entryDate, notes string) error
	Notes(ctx context.Context, ownerID int64, entryDate string) (string, error)
}

type entryRepository struct {
	db *sql.DB
}

func NewEntryRepository(db *sql.DB) EntryRepository {
	return &entryRepository{db: db}
}

func (r *entryRepository) SaveNotes(ctx context.Context, ownerID int64, entryDate, notes string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_entries (user_id, entry_date, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, entry_date) DO UPDATE SET notes = EXCLUDED.notes`,
		ownerID, entryDate, notes)
	return err
}

func (r *entryRepository) Notes(ctx context.Context, ownerID int64, entryDate string) (string, error) {
	var notes string
	err := r.db.QueryRowContext(ctx,
		`SELECT notes FROM daily_entries WHERE user_id = $1 AND entry_date = $2`,
		ownerID, entryDate,
	).Scan(&notes)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return notes, nil
}
