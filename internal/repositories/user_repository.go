package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"focustrack/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already taken")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error

	// refresh helpers
	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
	ClearRefresh(ctx context.Context, userID int64) error

	// Telegram helpers
	GetTelegramSettings(ctx context.Context, userID int64) (chatID int64, notify bool, err error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, created_at,
       refresh_token, refresh_expires_at, telegram_chat_id, notify_telegram`

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var chatID sql.NullInt64
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt,
		&u.RefreshToken, &u.RefreshExpiresAt, &chatID, &u.NotifyTelegram,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u.TelegramChatID = chatID.Int64
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	const q = `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, q,
		user.Username, user.Email, user.PasswordHash, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		// 23505 = unique_violation
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUserExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, q, username))
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = $1, refresh_expires_at = $2 WHERE id = $3`,
		token, expiresAt, userID)
	return err
}

func (r *userRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users
		WHERE refresh_token = $1 AND refresh_expires_at > NOW()`
	return scanUser(r.db.QueryRowContext(ctx, q, token))
}

func (r *userRepository) ClearRefresh(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token = NULL, refresh_expires_at = NULL WHERE id = $1`, userID)
	return err
}

func (r *userRepository) GetTelegramSettings(ctx context.Context, userID int64) (int64, bool, error) {
	var chatID sql.NullInt64
	var notify bool
	err := r.db.QueryRowContext(ctx,
		`SELECT telegram_chat_id, notify_telegram FROM users WHERE id = $1`, userID,
	).Scan(&chatID, &notify)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, ErrUserNotFound
		}
		return 0, false, err
	}
	return chatID.Int64, notify, nil
}
