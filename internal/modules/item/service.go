package item

import (
	"context"
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
)

// Service defines item business logic. Every operation takes the caller so
// the access policy is evaluated before anything else; the bool results on
// List and Retrieve report whether the data came from the cache.
type Service interface {
	List(ctx context.Context, caller *user.User) ([]Item, bool, error)
	Create(ctx context.Context, req CreateItemRequest, caller *user.User) (*Item, error)
	Retrieve(ctx context.Context, id int64, caller *user.User) (*Item, bool, error)
	Update(ctx context.Context, id int64, req UpdateItemRequest, partial bool, caller *user.User) (*Item, error)
	Delete(ctx context.Context, id int64, caller *user.User) error
}

// CreateItemRequest holds the data for creating an item.
type CreateItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// Validate checks field shapes and reports every violated field.
func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("This field may not be blank."),
			validation.Length(0, 255),
		),
		validation.Field(&r.Description,
			validation.Required.Error("This field may not be blank."),
		),
		validation.Field(&r.Quantity,
			validation.Min(0).Error("Ensure this value is greater than or equal to 0."),
		),
		validation.Field(&r.Price,
			validation.Required.Error("This field is required."),
			validation.Min(0.0).Error("Ensure this value is greater than or equal to 0."),
			validation.By(maxTwoDecimalPlaces),
		),
	)
}

// UpdateItemRequest holds the data for a full or partial item update.
// Nil fields were absent from the request body.
type UpdateItemRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Quantity    *int     `json:"quantity"`
	Price       *float64 `json:"price"`
}

// Validate checks the provided fields. When partial is false every field is
// required, matching a full replace.
func (r UpdateItemRequest) Validate(partial bool) error {
	required := func(rules ...validation.Rule) []validation.Rule {
		if partial {
			return rules
		}
		return append([]validation.Rule{validation.NotNil.Error("This field is required.")}, rules...)
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, required(
			validation.NilOrNotEmpty.Error("This field may not be blank."),
			validation.Length(0, 255),
		)...),
		validation.Field(&r.Description, required(
			validation.NilOrNotEmpty.Error("This field may not be blank."),
		)...),
		validation.Field(&r.Quantity, required(
			validation.Min(0).Error("Ensure this value is greater than or equal to 0."),
		)...),
		validation.Field(&r.Price, required(
			validation.Min(0.0).Error("Ensure this value is greater than or equal to 0."),
			validation.By(maxTwoDecimalPlaces),
		)...),
	)
}

// maxTwoDecimalPlaces enforces the 2-fraction-digit price schema. The rule
// sees the raw field value, so it must unwrap the pointer updates use.
func maxTwoDecimalPlaces(value interface{}) error {
	var p float64
	switch v := value.(type) {
	case float64:
		p = v
	case *float64:
		if v == nil {
			return nil
		}
		p = *v
	default:
		return nil
	}
	if math.Abs(p*100-math.Round(p*100)) > 1e-9 {
		return errors.New("Ensure that there are no more than 2 decimal places.")
	}
	return nil
}
