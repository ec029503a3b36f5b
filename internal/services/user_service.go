package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"focustrack/internal/models"
	"focustrack/internal/repositories"
)

type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)
}

type userService struct {
	repo         repositories.UserRepository
	emailService EmailService
	authService  AuthService
}

func NewUserService(repo repositories.UserRepository, emailService EmailService, authService AuthService) UserService {
	return &userService{
		repo:         repo,
		emailService: emailService,
		authService:  authService,
	}
}

func (s *userService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))
	if username == "" || email == "" {
		return nil, fmt.Errorf("username and email are required")
	}
	if err := s.authService.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := s.authService.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.emailService != nil {
		if err := s.emailService.SendWelcomeEmail(user.Email, user.Username); err != nil {
			// warn but do not fail registration
			log.Printf("Register: warning: failed to send welcome email to %s: %v", user.Email, err)
		}
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, strings.TrimSpace(username))
}

func (s *userService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.authService.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return fmt.Errorf("current password incorrect")
	}
	if err := s.authService.ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.authService.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	// invalidate the stored refresh token so the client has to log in again
	return s.repo.ClearRefresh(ctx, userID)
}

func (s *userService) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return s.repo.UpdateRefresh(ctx, userID, token, expiresAt)
}

func (s *userService) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	return s.repo.GetByRefreshToken(ctx, token)
}
