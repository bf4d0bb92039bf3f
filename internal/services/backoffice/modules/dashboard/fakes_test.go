package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

type fakeStore struct {
	mu sync.Mutex

	userStats  storage.UserStats
	orgStats   storage.OrganizationStats
	signups    []storage.MonthCount
	recent     []storage.User
	userErr    error
	orgErr     error
	signupsErr error
	recentErr  error

	gotSince  time.Time
	gotFrom   time.Time
	gotMonths int
	gotFilter storage.UserFilter
}

func (f *fakeStore) UserStats(_ context.Context, since time.Time) (storage.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotSince = since
	return f.userStats, f.userErr
}

func (f *fakeStore) OrganizationStats(context.Context) (storage.OrganizationStats, error) {
	return f.orgStats, f.orgErr
}

func (f *fakeStore) SignupsByMonth(_ context.Context, from time.Time, months int) ([]storage.MonthCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFrom, f.gotMonths = from, months
	return f.signups, f.signupsErr
}

func (f *fakeStore) ListUsers(_ context.Context, filter storage.UserFilter) (storage.Page[storage.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFilter = filter
	return storage.Page[storage.User]{Items: f.recent, Total: len(f.recent)}, f.recentErr
}

func populatedStore() *fakeStore {
	return &fakeStore{
		userStats: storage.UserStats{
			Total:    40,
			Active:   30,
			NewSince: 7,
			ByRole:   map[storage.Role]int{storage.RoleAdmin: 4, storage.RoleManager: 6, storage.RoleMember: 30},
		},
		orgStats: storage.OrganizationStats{
			Total:        8,
			Active:       5,
			RevenueCents: 1250000,
			ByPlan:       map[storage.Plan]int{storage.PlanFree: 2, storage.PlanEnterprise: 6},
		},
		signups: []storage.MonthCount{
			{Month: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), Count: 3},
			{Month: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Count: 6},
		},
		recent: []storage.User{
			{ID: "u1", Name: "Grace Hopper", Email: "grace@example.com", CreatedAt: fixedNow.Add(-3 * 24 * time.Hour)},
		},
	}
}

func testDependencies() module.Dependencies {
	return module.Dependencies{
		Now:           func() time.Time { return fixedNow },
		ResolveViewer: func(*http.Request) requestctx.Viewer { return requestctx.Viewer{UserID: "admin"} },
	}
}
