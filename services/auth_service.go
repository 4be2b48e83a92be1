package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/soccer-mvp/soccer-api/models"
	"github.com/soccer-mvp/soccer-api/repositories"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type LoginInput struct {
	// User carries the login identifier, which is the account email.
	User     string `json:"user"`
	Password string `json:"password"`
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login checks the credentials against the stored bcrypt hash. An unknown
// email and a wrong password both map to ErrInvalidCredentials so the
// response does not reveal which accounts exist.
func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if input.User == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.userRepo.GetByEmail(ctx, input.User)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	return user, nil
}
