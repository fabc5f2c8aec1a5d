package service

import (
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Validation failure subtypes. These are for internal logging and tests only;
// the delivery layer collapses all of them into a uniform unauthorized reply.
var (
	// ErrTokenExpired is returned when the token is past its TTL.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenSignature is returned when the signature does not verify.
	ErrTokenSignature = errors.New("token signature invalid")
	// ErrTokenMalformed is returned when the token cannot be decoded at all.
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the payload embedded in a session token: a denormalized snapshot
// of the account at issuance time. The system has no way to invalidate an
// issued token before expiry, so consumers must treat these values as
// "as of issuance", not "as of now".
type Claims struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	ImageURL string `json:"imgUrl,omitempty"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim back into the account identifier.
func (c *Claims) AccountID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService defines the interface for issuing and validating session tokens.
// Implementations are pure computations over an immutable signing key and are
// safe for unrestricted concurrent use.
type TokenService interface {
	// Issue creates a signed, time-bound token whose claims snapshot the
	// given account.
	Issue(account *entity.Account) (string, error)

	// Validate verifies signature and expiry and returns the embedded claims.
	// On failure it returns one of ErrTokenExpired, ErrTokenSignature or
	// ErrTokenMalformed.
	Validate(tokenString string) (*Claims, error)
}
