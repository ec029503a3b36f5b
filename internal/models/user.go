// internal/models/user.go
package models

import "time"

// User is an account that owns tasks, notes and activity entries.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`

	// opaque refresh token, stored server-side
	RefreshToken     *string    `json:"-"`
	RefreshExpiresAt *time.Time `json:"-"`

	// optional Telegram notifications
	TelegramChatID int64 `json:"-"`
	NotifyTelegram bool  `json:"-"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
