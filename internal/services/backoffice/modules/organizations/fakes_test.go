package organizations

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
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu         sync.Mutex
	orgs       map[string]storage.Organization
	users      []storage.User
	listErr    error
	lastFilter storage.OrganizationFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{orgs: map[string]storage.Organization{}}
}

func (f *fakeStore) CreateOrganization(_ context.Context, org storage.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.orgs {
		if existing.Slug == org.Slug {
			return storage.ErrConflict
		}
	}
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeStore) UpdateOrganization(_ context.Context, org storage.Organization) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orgs[org.ID]; !ok {
		return storage.ErrNotFound
	}
	for id, existing := range f.orgs {
		if id != org.ID && existing.Slug == org.Slug {
			return storage.ErrConflict
		}
	}
	f.orgs[org.ID] = org
	return nil
}

func (f *fakeStore) DeleteOrganization(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.orgs[id]; !ok {
		return storage.ErrNotFound
	}
	for _, user := range f.users {
		if user.OrganizationID == id {
			return storage.ErrConflict
		}
	}
	delete(f.orgs, id)
	return nil
}

func (f *fakeStore) GetOrganization(_ context.Context, id string) (storage.Organization, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.orgs[id]
	if !ok {
		return storage.Organization{}, storage.ErrNotFound
	}
	org.MemberCount = f.memberCount(id)
	return org, nil
}

func (f *fakeStore) ListOrganizations(_ context.Context, filter storage.OrganizationFilter) (storage.Page[storage.Organization], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if f.listErr != nil {
		return storage.Page[storage.Organization]{}, f.listErr
	}
	var matched []storage.Organization
	for _, org := range f.orgs {
		if filter.Status != "" && org.Status != filter.Status {
			continue
		}
		if filter.Plan != "" && org.Plan != filter.Plan {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(org.Name+" "+org.Slug), strings.ToLower(filter.Query)) {
			continue
		}
		org.MemberCount = f.memberCount(org.ID)
		matched = append(matched, org)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := len(matched)
	start := min(filter.Offset, total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return storage.Page[storage.Organization]{Items: matched[start:end], Total: total}, nil
}

func (f *fakeStore) ListUsers(_ context.Context, filter storage.UserFilter) (storage.Page[storage.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []storage.User
	for _, user := range f.users {
		if filter.OrganizationID != "" && user.OrganizationID != filter.OrganizationID {
			continue
		}
		matched = append(matched, user)
	}
	return storage.Page[storage.User]{Items: matched, Total: len(matched)}, nil
}

func (f *fakeStore) memberCount(orgID string) int {
	count := 0
	for _, user := range f.users {
		if user.OrganizationID == orgID {
			count++
		}
	}
	return count
}

func (f *fakeStore) addOrganization(org storage.Organization) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orgs[org.ID] = org
}

func (f *fakeStore) organization(id string) (storage.Organization, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	org, ok := f.orgs[id]
	return org, ok
}

func testDependencies() module.Dependencies {
	return module.Dependencies{
		Now:           func() time.Time { return fixedNow },
		ResolveViewer: func(*http.Request) requestctx.Viewer { return requestctx.Viewer{UserID: "admin"} },
	}
}

func newTestModule(store *fakeStore) Module {
	seq := 0
	return New(store, WithIDGenerator(func() string {
		seq++
		return "org-" + strconv.Itoa(seq)
	}))
}
