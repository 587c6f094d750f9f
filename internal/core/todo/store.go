package todo

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no Todo exists for an id.
	ErrNotFound = errors.New("todo not found")
	// ErrValidation wraps the field errors of a rejected input.
	ErrValidation = errors.New("invalid todo")
)

// Store defines the interface for Todo persistence.
type Store interface {
	// Create persists a new Todo. The store assigns ID and, if unset,
	// CreatedAt and UpdatedAt, writing them back into item.
	Create(ctx context.Context, item *Todo) error

	// CreateMany persists every item atomically: all are stored or none.
	CreateMany(ctx context.Context, items []*Todo) error

	// Get returns a single Todo by ID.
	// Returns ErrNotFound if the item does not exist.
	Get(ctx context.Context, id int64) (Todo, error)

	// List returns Todos matching every predicate of the filter, ordered by
	// CreatedAt descending with ID descending as the tie break.
	List(ctx context.Context, filter Filter) ([]Todo, error)

	// Update overwrites the mutable fields of the Todo with item.ID.
	// Returns ErrNotFound if no row was updated.
	Update(ctx context.Context, item Todo) error

	// Delete removes a Todo by ID.
	// Returns ErrNotFound if no row was deleted.
	Delete(ctx context.Context, id int64) error

	// Count returns the number of stored Todos.
	Count(ctx context.Context) (int64, error)
}
