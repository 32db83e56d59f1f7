package apierr

import (
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    *Error
		status int
	}{
		{Validation("x"), http.StatusBadRequest},
		{FieldValidation("email", "x"), http.StatusBadRequest},
		{Conflict("x"), http.StatusBadRequest},
		{Forbidden("x"), http.StatusForbidden},
		{NotFound("x"), http.StatusNotFound},
		{BadCredentials("x"), http.StatusNotFound},
		{Unauthenticated("x"), http.StatusUnauthorized},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.status {
			t.Errorf("kind %d: expected %d, got %d", tc.err.Kind, tc.status, got)
		}
	}
}

func TestFromValidation_PreservesEveryField(t *testing.T) {
	ve := validation.Errors{
		"email":    validation.NewError("required", "This field may not be blank."),
		"password": validation.NewError("required", "This field may not be blank."),
	}
	e := FromValidation(ve)
	if e.Kind != KindValidation {
		t.Fatalf("expected validation kind, got %d", e.Kind)
	}
	for _, field := range []string{"email", "password"} {
		msgs := e.Fields[field]
		if len(msgs) != 1 || msgs[0] != "This field may not be blank." {
			t.Errorf("field %q: unexpected messages %v", field, msgs)
		}
	}
}
