package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
)

type service struct {
	repo Repository
}

// NewService creates a new user service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, apierr.FromValidation(err)
	}
	if req.Password != req.Password2 {
		return nil, apierr.Validation("Password and Confirm Password doesn't match")
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, apierr.FieldValidation("email", "user with this email address already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		// The unique constraint closes the race the EmailExists pre-check leaves open.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apierr.FieldValidation("email", "user with this email address already exists.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}
