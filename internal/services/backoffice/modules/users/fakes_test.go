package users

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu         sync.Mutex
	users      map[string]storage.User
	orgs       map[string]storage.Organization
	listErr    error
	lastFilter storage.UserFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]storage.User{}, orgs: map[string]storage.Organization{}}
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

func (f *fakeStore) UpdateUser(_ context.Context, user storage.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return storage.ErrNotFound
	}
	for id, existing := range f.users {
		if id != user.ID && existing.Email == user.Email {
			return storage.ErrConflict
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id string) (storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	if org, ok := f.orgs[user.OrganizationID]; ok {
		user.OrganizationName = org.Name
	}
	return user, nil
}

func (f *fakeStore) ListUsers(_ context.Context, filter storage.UserFilter) (storage.Page[storage.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.listErr != nil {
		return storage.Page[storage.User]{}, f.listErr
	}
	var matched []storage.User
	for _, user := range f.users {
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.OrganizationID != "" && user.OrganizationID != filter.OrganizationID {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(user.Name+" "+user.Email), strings.ToLower(filter.Query)) {
			continue
		}
		matched = append(matched, user)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Email < matched[j].Email })
	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return storage.Page[storage.User]{Items: matched[start:end], Total: total}, nil
}

func (f *fakeStore) GetOrganization(_ context.Context, id string) (storage.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.orgs[id]
	if !ok {
		return storage.Organization{}, storage.ErrNotFound
	}
	return org, nil
}

func (f *fakeStore) ListOrganizations(_ context.Context, _ storage.OrganizationFilter) (storage.Page[storage.Organization], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := make([]storage.Organization, 0, len(f.orgs))
	for _, org := range f.orgs {
		items = append(items, org)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return storage.Page[storage.Organization]{Items: items, Total: len(items)}, nil
}

func (f *fakeStore) addUser(user storage.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
}

func (f *fakeStore) user(id string) (storage.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	return user, ok
}

func testDependencies(viewer requestctx.Viewer) module.Dependencies {
	return module.Dependencies{
		Now:           func() time.Time { return fixedNow },
		ResolveViewer: func(*http.Request) requestctx.Viewer { return viewer },
	}
}

func newTestModule(store *fakeStore) Module {
	seq := 0
	return New(store, WithBcryptCost(bcrypt.MinCost), WithIDGenerator(func() string {
		seq++
		return "user-" + strconv.Itoa(seq)
	}))
}
