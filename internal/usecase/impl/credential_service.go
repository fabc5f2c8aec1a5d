// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface. It holds no
// per-request state; every operation is a stateless orchestration of the
// account repository, the password hasher and the token service.
type credentialService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	tokenSvc    service.TokenService
	logger      *slog.Logger
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	TokenSvc    service.TokenService
	Logger      *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives
// all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		tokenSvc:    params.TokenSvc,
		logger:      params.Logger,
	}
}

// SignUp creates a new account and returns a session token minted from its
// snapshot. The email lookup is an early exit; the store's unique constraint
// is what actually guarantees uniqueness, and its violation maps back to the
// same conflict error.
func (srv *credentialService) SignUp(ctx context.Context, input *usecase.SignUpInput) (*usecase.TokenOutput, error) {
	srv.logger.Debug("Starting sign-up", slog.String("email", input.Email))

	_, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		srv.logger.Warn("Sign-up rejected, email taken", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "sign-up conflict")
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.NewStoreError(err, "failed to check email availability")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.logger.Error("Failed to hash password during sign-up", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account := &entity.Account{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			// Lost the race between the pre-check and the insert; the
			// constraint violation is surfaced as the same conflict.
			srv.logger.Warn("Sign-up lost uniqueness race", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "sign-up conflict")
		}

		return nil, domainerrors.NewStoreError(err, "failed to create account")
	}

	token, err := srv.tokenSvc.Issue(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after sign-up")
	}

	srv.logger.Info("Account created", slog.Any("accountID", account.ID))

	return &usecase.TokenOutput{Token: token}, nil
}

// SignIn verifies the submitted credentials and returns a session token
// minted from the account's current snapshot. Unknown email and wrong
// password are indistinguishable to the caller.
func (srv *credentialService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.TokenOutput, error) {
	srv.logger.Debug("Starting sign-in", slog.String("email", input.Email))

	account, err := srv.loadByEmailForAuth(ctx, input.Email)
	if err != nil {
		srv.logger.Warn("Sign-in failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// Password check runs outside any store call (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.logger.Warn("Sign-in failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
	}

	token, err := srv.tokenSvc.Issue(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after sign-in")
	}

	srv.logger.Debug("Signed in", slog.Any("accountID", account.ID))

	return &usecase.TokenOutput{Token: token}, nil
}

// ChangePassword re-proves knowledge of the old password before replacing the
// stored hash. A wrong old password is a step-up failure, distinct from a
// login failure. No token is reissued: the password never appears in claims,
// and previously issued tokens keep their residual-trust window until expiry.
func (srv *credentialService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	srv.logger.Debug("Starting password change", slog.String("email", input.Email))

	account, err := srv.loadByEmailForAuth(ctx, input.Email)
	if err != nil {
		srv.logger.Warn("Password change failed", slog.String("email", input.Email), slog.Any("error", err))

		return err
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		srv.logger.Warn("Password change rejected, step-up verification failed", slog.Any("accountID", account.ID))

		return errors.Wrap(domainerrors.ErrUnauthorized, "old password mismatch")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.logger.Error("Failed to hash new password", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	account.PasswordHash = hash
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return domainerrors.NewStoreError(err, "failed to persist new password")
	}

	srv.logger.Info("Password changed", slog.Any("accountID", account.ID))

	return nil
}

// UpdateProfile applies a partial update to the account and returns a fresh
// token whose claims reflect the updated record. The caller is expected to
// swap its stale token; the old one stays independently valid until expiry.
func (srv *credentialService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.TokenOutput, error) {
	srv.logger.Debug("Starting profile update", slog.Any("accountID", accountID))

	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "account not found")
		}

		return nil, domainerrors.NewStoreError(err, "failed to load account for update")
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.Email != nil {
		account.Email = *input.Email
	}
	if input.ImageURL != nil {
		account.ImageURL = *input.ImageURL
	}

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, errors.Wrap(domainerrors.ErrDuplicateAccount, "email already registered")
		}

		return nil, domainerrors.NewStoreError(err, "failed to update account")
	}

	token, err := srv.tokenSvc.Issue(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token after profile update")
	}

	srv.logger.Info("Profile updated", slog.Any("accountID", account.ID))

	return &usecase.TokenOutput{Token: token}, nil
}

// ListAccounts returns the external projection of every account.
func (srv *credentialService) ListAccounts(ctx context.Context) ([]*usecase.AccountOutput, error) {
	accounts, err := srv.accountRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewStoreError(err, "failed to list accounts")
	}

	outputs := make([]*usecase.AccountOutput, 0, len(accounts))
	for _, account := range accounts {
		outputs = append(outputs, usecase.NewAccountOutput(account))
	}

	return outputs, nil
}

// DeleteAccount removes an account by ID.
func (srv *credentialService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	if err := srv.accountRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "account not found")
		}

		return domainerrors.NewStoreError(err, "failed to delete account")
	}

	srv.logger.Info("Account deleted", slog.Any("accountID", accountID))

	return nil
}

// loadByEmailForAuth loads an account for a credential check. An absent
// account surfaces as InvalidCredentials so lookups cannot be used to probe
// which emails are registered. An empty stored hash is a data-integrity
// violation: it is logged loudly and never treated as a match.
func (srv *credentialService) loadByEmailForAuth(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "account lookup failed")
		}

		return nil, domainerrors.NewStoreError(err, "failed to load account")
	}

	if account.PasswordHash == "" {
		srv.logger.Error("Stored credential is corrupted", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "stored credential corrupted")
	}

	return account, nil
}
