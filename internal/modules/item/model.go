package item

import "time"

// Item is an inventory record. The id is store-assigned and immutable;
// name carries a unique index so duplicate creates fail at the store even
// under concurrent writers.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
