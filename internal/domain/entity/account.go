// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity of the system, representing a single registered
// identity. The password is only ever held as the output of the adaptive
// hashing function; plaintext never reaches this struct.
type Account struct {
	ID           uuid.UUID // Unique identifier, generated by the store on creation.
	Email        string    // Login identifier; unique across all accounts (exact, case-sensitive match).
	Name         string    // Optional display name.
	ImageURL     string    // Optional profile image reference.
	PasswordHash string    // bcrypt hash of the password. Mutated only via the password-change flow.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
