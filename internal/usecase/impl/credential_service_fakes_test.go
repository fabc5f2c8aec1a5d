package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
)

// fakeAccountRepo is a test-only, in-memory AccountRepository. Error fields
// allow injecting store failures per operation.
type fakeAccountRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*entity.Account

	findErr   error
	createErr error
	updateErr error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*entity.Account)}
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}
	clone := *account

	return &clone, nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, account := range f.accounts {
		if account.Email == email {
			clone := *account

			return &clone, nil
		}
	}

	return nil, repository.ErrAccountNotFound
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*entity.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	accounts := make([]*entity.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		clone := *account
		accounts = append(accounts, &clone)
	}

	return accounts, nil
}

func (f *fakeAccountRepo) Create(_ context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	account.ID = uuid.New()
	clone := *account
	f.accounts[account.ID] = &clone

	return nil
}

func (f *fakeAccountRepo) Update(_ context.Context, account *entity.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.accounts[account.ID]; !ok {
		return repository.ErrAccountNotFound
	}
	for id, existing := range f.accounts {
		if id != account.ID && existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *account
	f.accounts[account.ID] = &clone

	return nil
}

func (f *fakeAccountRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[id]; !ok {
		return repository.ErrAccountNotFound
	}
	delete(f.accounts, id)

	return nil
}

func (f *fakeAccountRepo) stored(id uuid.UUID) *entity.Account {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.accounts[id]
}

func (f *fakeAccountRepo) byEmail(email string) *entity.Account {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, account := range f.accounts {
		if account.Email == email {
			return account
		}
	}

	return nil
}

// prechecklessRepo simulates losing the sign-up uniqueness race: the email
// lookup reports no account even though the insert will collide.
type prechecklessRepo struct {
	*fakeAccountRepo
}

func (p *prechecklessRepo) FindByEmail(context.Context, string) (*entity.Account, error) {
	return nil, repository.ErrAccountNotFound
}

// fakeHasher is a deterministic stand-in for bcrypt so tests stay fast.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}

	return "hashed:" + password, nil
}

func (f *fakeHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

// fakeTokenService mints inspectable tokens from the account snapshot.
type fakeTokenService struct {
	issueErr error
}

func (f *fakeTokenService) Issue(account *entity.Account) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}

	return "token|" + account.ID.String() + "|" + account.Email + "|" + account.Name, nil
}

func (f *fakeTokenService) Validate(string) (*service.Claims, error) {
	panic("not used by credential service tests")
}

// credentialFixtures bundles a service under test with its fakes.
type credentialFixtures struct {
	service  usecase.CredentialUsecase
	repo     *fakeAccountRepo
	hasher   *fakeHasher
	tokenSvc *fakeTokenService
}

func newCredentialFixtures(t *testing.T) credentialFixtures {
	t.Helper()

	repo := newFakeAccountRepo()
	hasher := &fakeHasher{}
	tokenSvc := &fakeTokenService{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCredentialService(CredentialServiceParams{
		AccountRepo: repo,
		Hasher:      hasher,
		TokenSvc:    tokenSvc,
		Logger:      logger,
	})

	return credentialFixtures{
		service:  service,
		repo:     repo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
	}
}
