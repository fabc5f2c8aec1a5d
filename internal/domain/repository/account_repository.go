// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for account persistence. The application layer
// handles these without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateEmail is returned when a create or update collides with the
	// unique email constraint. The store enforces uniqueness at the schema
	// level; the service's pre-check is only an early exit.
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the standard operations for account persistence.
// Each call is atomic on its own; no multi-operation transactions are assumed.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by exact email match.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// List retrieves all accounts.
	List(ctx context.Context) ([]*entity.Account, error)

	// Create persists a new account. The account's ID and timestamps are
	// filled in from the stored row.
	Create(ctx context.Context, account *entity.Account) error

	// Update modifies an existing account in the storage.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
