package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/timeouts"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/sync/errgroup"
)

const (
	recentUsersLimit = 5
	signupMonths     = 6
	newUserWindow    = 30 * 24 * time.Hour
	widgetWorkers    = 4
)

// Store answers the dashboard widget queries.
type Store interface {
	UserStats(ctx context.Context, since time.Time) (storage.UserStats, error)
	OrganizationStats(ctx context.Context) (storage.OrganizationStats, error)
	SignupsByMonth(ctx context.Context, from time.Time, months int) ([]storage.MonthCount, error)
	ListUsers(ctx context.Context, filter storage.UserFilter) (storage.Page[storage.User], error)
}

// snapshot is one load of every widget. Each widget keeps its own error so a
// failing query blanks only that widget.
type snapshot struct {
	users      storage.UserStats
	usersErr   error
	orgs       storage.OrganizationStats
	orgsErr    error
	signups    []storage.MonthCount
	signupsErr error
	recent     []storage.User
	recentErr  error
}

type service struct {
	store Store
}

// load runs the widget queries concurrently under one deadline. Month
// boundaries are taken in UTC whatever zone now carries.
func (s service) load(ctx context.Context, now time.Time) snapshot {
	now = now.UTC()
	ctx, cancel := context.WithTimeout(ctx, timeouts.Widget)
	defer cancel()

	var snap snapshot
	var g errgroup.Group
	g.SetLimit(widgetWorkers)
	g.Go(func() error {
		snap.users, snap.usersErr = query(ctx, func(ctx context.Context) (storage.UserStats, error) {
			return s.store.UserStats(ctx, now.Add(-newUserWindow))
		})
		return nil
	})
	g.Go(func() error {
		snap.orgs, snap.orgsErr = query(ctx, s.store.OrganizationStats)
		return nil
	})
	g.Go(func() error {
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1-signupMonths, 0)
		snap.signups, snap.signupsErr = query(ctx, func(ctx context.Context) ([]storage.MonthCount, error) {
			return s.store.SignupsByMonth(ctx, from, signupMonths)
		})
		return nil
	})
	g.Go(func() error {
		page, err := query(ctx, func(ctx context.Context) (storage.Page[storage.User], error) {
			return s.store.ListUsers(ctx, storage.UserFilter{Limit: recentUsersLimit})
		})
		snap.recent, snap.recentErr = page.Items, err
		return nil
	})
	_ = g.Wait()
	return snap
}

// query runs one widget call under the per-query timeout.
func query[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.StoreQuery)
	defer cancel()
	value, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return value, nil
}

var errMissingStore = fmt.Errorf("dashboard store is required")
