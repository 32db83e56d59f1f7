package user

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Service defines the interface for account registration business logic.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
}

// RegisterRequest holds the data for creating a new account. Password2 is
// the confirmation and must match Password.
type RegisterRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// Validate checks field shapes and reports every violated field.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("This field may not be blank."),
			is.EmailFormat.Error("Enter a valid email address."),
			validation.Length(0, 255),
		),
		validation.Field(&r.Name,
			validation.Required.Error("This field may not be blank."),
			validation.Length(0, 255),
		),
		validation.Field(&r.Password,
			validation.Required.Error("This field may not be blank."),
			validation.Length(0, 255),
		),
		validation.Field(&r.Password2,
			validation.Required.Error("This field may not be blank."),
			validation.Length(0, 255),
		),
	)
}
