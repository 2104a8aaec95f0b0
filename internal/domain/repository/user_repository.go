// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"riptide/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique index.
var ErrDuplicate = errors.New("duplicate record")

// Page describes skip/limit pagination. Skip is a page index: the effective
// offset is Skip*Limit, matching the API's query semantics.
type Page struct {
	Skip  int64
	Limit int64
}

// Offset returns the number of documents to skip.
func (p Page) Offset() int64 {
	return p.Skip * p.Limit
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicate when the username
	// is already taken (unique index, insert-or-conflict).
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by username.
	// Returns ErrNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByUsernameOrNil is the non-raising variant: absence is reported
	// by a nil user, not an error.
	FindByUsernameOrNil(ctx context.Context, username string) (*entity.User, error)

	// ExistsByID reports whether a user with the given ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdatePassword replaces the stored password hash for a username.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}
