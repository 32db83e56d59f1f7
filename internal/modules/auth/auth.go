package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// TokenPair is the access/refresh token pair issued on login.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate reports every blank credential field before authentication is
// attempted.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("This field may not be blank.")),
		validation.Field(&r.Password, validation.Required.Error("This field may not be blank.")),
	)
}
