package impl

import (
	"context"
	"strings"
	"testing"

	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_SignUp_Success(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	output, err := fx.service.SignUp(ctx, &usecase.SignUpInput{
		Name:     "Alice",
		Email:    "alice@x.com",
		Password: "pw1secret",
	})
	require.NoError(t, err)
	assert.Contains(t, output.Token, "alice@x.com")

	stored := fx.repo.byEmail("alice@x.com")
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:pw1secret", stored.PasswordHash)
}

func TestCredentialService_SignUp_Duplicate(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)

	output, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "other-pass"})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))

	// No second record was created.
	accounts, listErr := fx.repo.List(ctx)
	require.NoError(t, listErr)
	assert.Len(t, accounts, 1)
}

func TestCredentialService_SignUp_LostUniquenessRace(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	// The pre-check misses the concurrent insert; the store's unique
	// constraint reports the collision on Create instead.
	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "race@x.com", Password: "pw1secret"})
	require.NoError(t, err)

	svc := fx.service.(*credentialService)
	svc.accountRepo = &prechecklessRepo{fakeAccountRepo: fx.repo}

	output, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "race@x.com", Password: "pw1secret"})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
}

func TestCredentialService_SignUp_HashFailure(t *testing.T) {
	fx := newCredentialFixtures(t)
	fx.hasher.hashErr = errors.New("input too long")

	output, err := fx.service.SignUp(context.Background(), &usecase.SignUpInput{
		Email:    "a@x.com",
		Password: strings.Repeat("x", 100),
	})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestCredentialService_SignIn(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Name: "A", Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "nobody@x.com", Password: "pw1secret"})
		assert.Nil(t, output)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("wrong password", func(t *testing.T) {
		output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "wrong"})
		assert.Nil(t, output)
		// Same caller-visible error as the unknown-email case.
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("success", func(t *testing.T) {
		output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "pw1secret"})
		require.NoError(t, err)
		assert.Contains(t, output.Token, "a@x.com")
	})
}

func TestCredentialService_SignIn_CorruptedStoredHash(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)

	stored := fx.repo.byEmail("a@x.com")
	stored.PasswordHash = ""

	// A data-integrity error must never come back as a credential mismatch,
	// and certainly never as a match.
	output, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "pw1secret"})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInternalError))
}

func TestCredentialService_ChangePassword(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "oldpassword"})
	require.NoError(t, err)
	originalHash := fx.repo.byEmail("a@x.com").PasswordHash

	t.Run("wrong old password", func(t *testing.T) {
		err := fx.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
			Email:       "a@x.com",
			OldPassword: "not-the-old-one",
			NewPassword: "newpassword",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
		// Stored hash unchanged.
		assert.Equal(t, originalHash, fx.repo.byEmail("a@x.com").PasswordHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		err := fx.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
			Email:       "nobody@x.com",
			OldPassword: "oldpassword",
			NewPassword: "newpassword",
		})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})

	t.Run("success", func(t *testing.T) {
		err := fx.service.ChangePassword(ctx, &usecase.ChangePasswordInput{
			Email:       "a@x.com",
			OldPassword: "oldpassword",
			NewPassword: "newpassword",
		})
		require.NoError(t, err)

		// Old password no longer signs in; the new one does.
		_, err = fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "oldpassword"})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

		_, err = fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "newpassword"})
		assert.NoError(t, err)
	})
}

func TestCredentialService_UpdateProfile(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Name: "Old Name", Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	account := fx.repo.byEmail("a@x.com")

	newName := "New Name"
	newEmail := "new@x.com"
	output, err := fx.service.UpdateProfile(ctx, account.ID, &usecase.UpdateProfileInput{
		Name:  &newName,
		Email: &newEmail,
	})
	require.NoError(t, err)

	// Fresh token reflects the updated record.
	assert.Contains(t, output.Token, "new@x.com")
	assert.Contains(t, output.Token, "New Name")

	stored := fx.repo.stored(account.ID)
	assert.Equal(t, "New Name", stored.Name)
	assert.Equal(t, "new@x.com", stored.Email)
	// Untouched fields stay as they were.
	assert.Equal(t, account.PasswordHash, stored.PasswordHash)
}

func TestCredentialService_UpdateProfile_NotFound(t *testing.T) {
	fx := newCredentialFixtures(t)

	output, err := fx.service.UpdateProfile(context.Background(), uuid.New(), &usecase.UpdateProfileInput{})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCredentialService_UpdateProfile_EmailTaken(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	_, err = fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "b@x.com", Password: "pw2secret"})
	require.NoError(t, err)

	takenEmail := "a@x.com"
	output, err := fx.service.UpdateProfile(ctx, fx.repo.byEmail("b@x.com").ID, &usecase.UpdateProfileInput{
		Email: &takenEmail,
	})
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))
}

func TestCredentialService_DeleteAccount(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	_, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	account := fx.repo.byEmail("a@x.com")

	require.NoError(t, fx.service.DeleteAccount(ctx, account.ID))
	assert.Nil(t, fx.repo.stored(account.ID))

	err = fx.service.DeleteAccount(ctx, account.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCredentialService_StoreUnavailable(t *testing.T) {
	fx := newCredentialFixtures(t)
	fx.repo.findErr = errors.New("connection refused")

	_, err := fx.service.SignIn(context.Background(), &usecase.SignInInput{Email: "a@x.com", Password: "pw1secret"})
	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "STORE_UNAVAILABLE", appErr.ErrorCode())
	assert.Equal(t, 500, appErr.HTTPCode())
}

// End-to-end scenario over the usecase surface: duplicate sign-up conflicts,
// wrong password rejects uniformly, correct password mints a token carrying
// the account's email.
func TestCredentialService_Scenario(t *testing.T) {
	fx := newCredentialFixtures(t)
	ctx := context.Background()

	t1, err := fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	assert.Contains(t, t1.Token, "a@x.com")

	_, err = fx.service.SignUp(ctx, &usecase.SignUpInput{Email: "a@x.com", Password: "pw1secret"})
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateAccount))

	_, err = fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "wrong"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	t2, err := fx.service.SignIn(ctx, &usecase.SignInInput{Email: "a@x.com", Password: "pw1secret"})
	require.NoError(t, err)
	assert.Contains(t, t2.Token, "a@x.com")
}
