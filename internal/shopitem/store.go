package shopitem

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("shop item not found")

	// ErrInvalidItem is returned when a write would persist a blank name or a count below 1.
	ErrInvalidItem = errors.New("invalid shop item")
)

// Store persists shop items keyed by id. All methods may block and may fail.
type Store interface {
	// GetByID returns ErrNotFound when the id is unknown.
	GetByID(ctx context.Context, id int) (ShopItem, error)

	// Add saves a new item. Items carrying UndefinedID get a fresh id.
	Add(ctx context.Context, item ShopItem) error

	// Edit replaces an existing item. Returns ErrNotFound when the id is unknown.
	Edit(ctx context.Context, item ShopItem) error
}

// Lister is implemented by stores that can enumerate and remove items.
type Lister interface {
	List(ctx context.Context) ([]ShopItem, error)
	Delete(ctx context.Context, id int) error
}
