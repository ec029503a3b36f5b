package services

import (
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	HashPassword(plain string) (string, error)
	CheckPassword(hash, plain string) error
	ValidatePassword(plain string) error
}

type authService struct{}

func NewAuthService() AuthService {
	return &authService{}
}

func (s *authService) HashPassword(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (s *authService) CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

var (
	lowerRe   = regexp.MustCompile(`[a-z]`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	digitRe   = regexp.MustCompile(`\d`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

var weakPasswords = []string{"password", "12345678", "qwerty123", "admin123", "letmein123"}

// ValidatePassword enforces the account password policy.
func (s *authService) ValidatePassword(plain string) error {
	switch {
	case plain == "":
		return errors.New("Password is required")
	case len(plain) < 8:
		return errors.New("Password must be at least 8 characters long")
	case len(plain) > 128:
		return errors.New("Password must be less than 128 characters long")
	case !lowerRe.MatchString(plain):
		return errors.New("Password must contain at least one lowercase letter")
	case !upperRe.MatchString(plain):
		return errors.New("Password must contain at least one uppercase letter")
	case !digitRe.MatchString(plain):
		return errors.New("Password must contain at least one number")
	case !specialRe.MatchString(plain):
		return errors.New("Password must contain at least one special character")
	}
	lower := strings.ToLower(plain)
	for _, weak := range weakPasswords {
		if lower == weak {
			return errors.New("Password is too common. Please choose a more secure password")
		}
	}
	return nil
}
