package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// UserStats counts users overall, active users, and users created at or
// after since.
func (s *Store) UserStats(ctx context.Context, since time.Time) (storage.UserStats, error) {
	if err := s.ready(ctx); err != nil {
		return storage.UserStats{}, err
	}
	stats := storage.UserStats{ByRole: map[storage.Role]int{}}
	err := s.sqlDB.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0)
		FROM users`, string(storage.UserActive), toMillis(since),
	).Scan(&stats.Total, &stats.Active, &stats.NewSince)
	if err != nil {
		return storage.UserStats{}, fmt.Errorf("user stats: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return storage.UserStats{}, fmt.Errorf("users by role: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			role  string
			count int
		)
		if err := rows.Scan(&role, &count); err != nil {
			return storage.UserStats{}, fmt.Errorf("scan users by role: %w", err)
		}
		stats.ByRole[storage.Role(role)] = count
	}
	if err := rows.Err(); err != nil {
		return storage.UserStats{}, fmt.Errorf("iterate users by role: %w", err)
	}
	return stats, nil
}

// OrganizationStats counts organizations and sums revenue of those not
// churned.
func (s *Store) OrganizationStats(ctx context.Context) (storage.OrganizationStats, error) {
	if err := s.ready(ctx); err != nil {
		return storage.OrganizationStats{}, err
	}
	stats := storage.OrganizationStats{ByPlan: map[storage.Plan]int{}}
	err := s.sqlDB.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status != ? THEN monthly_revenue_cents ELSE 0 END), 0)
		FROM organizations`, string(storage.OrganizationActive), string(storage.OrganizationChurned),
	).Scan(&stats.Total, &stats.Active, &stats.RevenueCents)
	if err != nil {
		return storage.OrganizationStats{}, fmt.Errorf("organization stats: %w", err)
	}

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT plan, COUNT(*) FROM organizations GROUP BY plan`)
	if err != nil {
		return storage.OrganizationStats{}, fmt.Errorf("organizations by plan: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			plan  string
			count int
		)
		if err := rows.Scan(&plan, &count); err != nil {
			return storage.OrganizationStats{}, fmt.Errorf("scan organizations by plan: %w", err)
		}
		stats.ByPlan[storage.Plan(plan)] = count
	}
	if err := rows.Err(); err != nil {
		return storage.OrganizationStats{}, fmt.Errorf("iterate organizations by plan: %w", err)
	}
	return stats, nil
}

// SignupsByMonth returns one bucket per calendar month starting with the
// month containing from. Months without signups have a zero count.
func (s *Store) SignupsByMonth(ctx context.Context, from time.Time, months int) ([]storage.MonthCount, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if months <= 0 {
		return nil, nil
	}
	start := monthStart(from)
	end := start.AddDate(0, months, 0)

	rows, err := s.sqlDB.QueryContext(ctx, `SELECT
		strftime('%Y-%m', created_at / 1000, 'unixepoch') AS month, COUNT(*)
		FROM users WHERE created_at >= ? AND created_at < ?
		GROUP BY month`, toMillis(start), toMillis(end))
	if err != nil {
		return nil, fmt.Errorf("signups by month: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var (
			month string
			count int
		)
		if err := rows.Scan(&month, &count); err != nil {
			return nil, fmt.Errorf("scan signups by month: %w", err)
		}
		counts[month] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate signups by month: %w", err)
	}

	out := make([]storage.MonthCount, months)
	for i := range out {
		month := start.AddDate(0, i, 0)
		out[i] = storage.MonthCount{Month: month, Count: counts[month.Format("2006-01")]}
	}
	return out, nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
