package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/Onkar-Kul/simple-inventory-management/internal/apierr"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
)

// badCredentialsMessage never discloses which of email or password was wrong.
const badCredentialsMessage = "Email or Password is not Valid"

type service struct {
	users  user.Repository
	issuer *TokenIssuer
}

// NewService creates a new auth service.
func NewService(users user.Repository, issuer *TokenIssuer) Service {
	return &service{users: users, issuer: issuer}
}

func (s *service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := req.Validate(); err != nil {
		return nil, apierr.FromValidation(err)
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apierr.BadCredentials(badCredentialsMessage)
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apierr.BadCredentials(badCredentialsMessage)
	}

	pair, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	id, err := s.issuer.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, apierr.Unauthenticated("Token is invalid or expired")
	}

	u, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, apierr.Unauthenticated("Token is invalid or expired")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	pair, err := s.issuer.Issue(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}
