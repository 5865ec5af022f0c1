package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-dashboard/utils"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks the shared admin secret. There are no user accounts;
// every admin knows the same password.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) error
}

type LoginInput struct {
	Password string `json:"password"`
}

type authService struct {
	passwordHash string
}

// NewAuthService hashes the secret once so the plain text does not stay in
// memory after startup.
func NewAuthService(adminPassword string) (AuthService, error) {
	if adminPassword == "" {
		return nil, errors.New("admin password must not be empty")
	}
	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return nil, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}
	return &authService{passwordHash: hash}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := utils.CheckPasswordHash(input.Password, s.passwordHash)
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
