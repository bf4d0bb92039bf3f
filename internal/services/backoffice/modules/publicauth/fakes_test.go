package publicauth

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu      sync.Mutex
	users   map[string]storage.User
	resets  map[string]storage.PasswordReset
	touched map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   map[string]storage.User{},
		resets:  map[string]storage.PasswordReset{},
		touched: map[string]time.Time{},
	}
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return storage.User{}, storage.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user storage.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return storage.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[id] = at
	return nil
}

func (f *fakeStore) PutPasswordReset(_ context.Context, reset storage.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets[reset.Token] = reset
	return nil
}

func (f *fakeStore) GetPasswordReset(_ context.Context, token string) (storage.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resets[token]
	if !ok {
		return storage.PasswordReset{}, storage.ErrNotFound
	}
	return reset, nil
}

func (f *fakeStore) ConsumePasswordReset(_ context.Context, token string, hash string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	reset, ok := f.resets[token]
	if !ok || !reset.Usable(now) {
		return storage.ErrNotFound
	}
	reset.UsedAt = now
	f.resets[token] = reset
	user := f.users[reset.UserID]
	user.PasswordHash = hash
	f.users[reset.UserID] = user
	return nil
}

func (f *fakeStore) user(id string) storage.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id]
}

func (f *fakeStore) addUser(t *testing.T, user storage.User, password string) {
	t.Helper()
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		user.PasswordHash = string(hash)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func newTestIssuer(t *testing.T) *sessiontoken.Manager {
	t.Helper()
	manager, err := sessiontoken.New(sessiontoken.Config{
		Secret: []byte("test-secret-0123456789"),
		TTL:    time.Hour,
		Now:    func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("sessiontoken.New: %v", err)
	}
	return manager
}

func newTestHandler(t *testing.T, store *fakeStore, issuer TokenIssuer) http.Handler {
	t.Helper()
	ids, tokens := 0, 0
	m := New(store, issuer,
		WithBcryptCost(bcrypt.MinCost),
		WithIDGenerator(func() string {
			ids++
			return "user-" + strconv.Itoa(ids)
		}),
		WithTokenGenerator(func() string {
			tokens++
			return "reset-" + strconv.Itoa(tokens)
		}),
	)
	mount, err := m.Mount(module.Dependencies{
		Now:           func() time.Time { return fixedNow },
		ResolveViewer: func(*http.Request) requestctx.Viewer { return requestctx.Viewer{} },
	})
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mount.Handler
}
