package item

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no item matches the id.
	ErrNotFound = errors.New("item not found")
	// ErrDuplicateName is returned when the name unique index is violated.
	ErrDuplicateName = errors.New("item name already exists")
)

// Repository defines the interface for item data storage.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id int64) (*Item, error)
	// List returns all items in creation order.
	List(ctx context.Context) ([]Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id int64) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
