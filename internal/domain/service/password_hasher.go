// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying adaptive hashing algorithm (e.g., bcrypt),
// keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. It fails only
	// on malformed input (empty or oversized plaintext).
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash in constant time.
	// It returns false on any mismatch and never fails on a wrong password.
	Check(password, hash string) bool
}
