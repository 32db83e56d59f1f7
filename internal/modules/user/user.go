package user

import (
	"time"

	"github.com/google/uuid"
)

// Capability is a named permission attached to a user identity.
type Capability string

const (
	// CapabilityStaff marks administrative users.
	CapabilityStaff Capability = "staff"
	// CapabilityItemAdder allows creating and mutating inventory items.
	CapabilityItemAdder Capability = "item_adder"
)

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	IsItemAdder  bool      `json:"is_item_adder"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Capabilities returns the capability set derived from the account flags.
func (u *User) Capabilities() []Capability {
	var caps []Capability
	if u.IsStaff {
		caps = append(caps, CapabilityStaff)
	}
	if u.IsItemAdder {
		caps = append(caps, CapabilityItemAdder)
	}
	return caps
}

// Has reports whether the user holds the given capability.
func (u *User) Has(c Capability) bool {
	for _, have := range u.Capabilities() {
		if have == c {
			return true
		}
	}
	return false
}
