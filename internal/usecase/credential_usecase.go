// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignUpInput defines the data required to create a new account.
type SignUpInput struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SignInInput defines the data required to sign in.
type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordInput defines the data required to change a password.
// The old password must be re-proven even though the caller already holds a
// valid session (step-up verification).
type ChangePasswordInput struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// UpdateProfileInput defines a partial profile update. Nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	ImageURL *string `json:"imageUrl,omitempty" validate:"omitempty,max=255"`
}

// --- Output DTOs ---

// TokenOutput carries a freshly issued session token.
type TokenOutput struct {
	Token string `json:"token"`
}

// AccountOutput is the externally visible projection of an account.
// It never carries the password hash.
type AccountOutput struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewAccountOutput maps an account entity to its external projection.
func NewAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:        account.ID,
		Email:     account.Email,
		Name:      account.Name,
		ImageURL:  account.ImageURL,
		CreatedAt: account.CreatedAt,
	}
}

// CredentialUsecase defines the interface for credential and session
// operations. This is the contract the delivery layer depends on.
//
// Tokens are stateless bearer credentials: nothing here can invalidate a
// previously issued token before its expiry. Profile updates return a fresh
// token so the client can swap its stale one, but the old token remains
// independently valid until it expires.
type CredentialUsecase interface {
	SignUp(ctx context.Context, input *SignUpInput) (*TokenOutput, error)
	SignIn(ctx context.Context, input *SignInInput) (*TokenOutput, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*TokenOutput, error)
	ListAccounts(ctx context.Context) ([]*AccountOutput, error)
	DeleteAccount(ctx context.Context, accountID uuid.UUID) error
}
