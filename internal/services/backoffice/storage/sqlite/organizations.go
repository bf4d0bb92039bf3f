package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

const organizationColumns = `o.id, o.name, o.slug, o.plan, o.status, o.seats, o.monthly_revenue_cents,
	o.country, o.created_at, (SELECT COUNT(*) FROM users u WHERE u.organization_id = o.id)`

func scanOrganization(row rowScanner) (storage.Organization, error) {
	var (
		org          storage.Organization
		plan, status string
		created      int64
	)
	if err := row.Scan(&org.ID, &org.Name, &org.Slug, &plan, &status, &org.Seats, &org.MonthlyRevenueCents,
		&org.Country, &created, &org.MemberCount); err != nil {
		return storage.Organization{}, err
	}
	org.Plan = storage.Plan(plan)
	org.Status = storage.OrganizationStatus(status)
	org.CreatedAt = fromMillis(created)
	return org, nil
}

// CreateOrganization inserts org. A duplicate slug returns
// storage.ErrConflict.
func (s *Store) CreateOrganization(ctx context.Context, org storage.Organization) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(org.ID) == "" {
		return fmt.Errorf("organization id is required")
	}
	if org.CreatedAt.IsZero() {
		org.CreatedAt = s.now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO organizations
		(id, name, slug, plan, status, seats, monthly_revenue_cents, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		org.ID, strings.TrimSpace(org.Name), org.Slug, string(org.Plan), string(org.Status),
		org.Seats, org.MonthlyRevenueCents, strings.ToUpper(strings.TrimSpace(org.Country)), toMillis(org.CreatedAt),
	)
	return mapWriteError("create organization", err)
}

// UpdateOrganization rewrites the editable fields.
func (s *Store) UpdateOrganization(ctx context.Context, org storage.Organization) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE organizations
		SET name = ?, slug = ?, plan = ?, status = ?, seats = ?, monthly_revenue_cents = ?, country = ?
		WHERE id = ?`,
		strings.TrimSpace(org.Name), org.Slug, string(org.Plan), string(org.Status),
		org.Seats, org.MonthlyRevenueCents, strings.ToUpper(strings.TrimSpace(org.Country)), org.ID,
	)
	if err != nil {
		return mapWriteError("update organization", err)
	}
	return requireAffected("update organization", result)
}

// DeleteOrganization removes an organization without members. An
// organization that still has members returns storage.ErrConflict.
func (s *Store) DeleteOrganization(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete organization: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var members int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE organization_id = ?`, id).Scan(&members); err != nil {
		return fmt.Errorf("count organization members: %w", err)
	}
	if members > 0 {
		return fmt.Errorf("delete organization with %d members: %w", members, storage.ErrConflict)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM organizations WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("delete organization", err)
	}
	if err := requireAffected("delete organization", result); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete organization: %w", err)
	}
	return nil
}

// GetOrganization loads an organization by id.
func (s *Store) GetOrganization(ctx context.Context, id string) (storage.Organization, error) {
	if err := s.ready(ctx); err != nil {
		return storage.Organization{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+organizationColumns+` FROM organizations o WHERE o.id = ?`, id)
	org, err := scanOrganization(row)
	if err != nil {
		return storage.Organization{}, mapReadError("get organization", err)
	}
	return org, nil
}

// ListOrganizations returns organizations ordered by name.
func (s *Store) ListOrganizations(ctx context.Context, filter storage.OrganizationFilter) (storage.Page[storage.Organization], error) {
	if err := s.ready(ctx); err != nil {
		return storage.Page[storage.Organization]{}, err
	}

	var (
		clauses []string
		args    []any
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		clauses = append(clauses, `(lower(o.name) LIKE ? ESCAPE '\' OR o.slug LIKE ? ESCAPE '\')`)
		pattern := likePattern(q)
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		clauses = append(clauses, `o.status = ?`)
		args = append(args, string(filter.Status))
	}
	if filter.Plan != "" {
		clauses = append(clauses, `o.plan = ?`)
		args = append(args, string(filter.Plan))
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var page storage.Page[storage.Organization]
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM organizations o`+where, args...).Scan(&page.Total); err != nil {
		return storage.Page[storage.Organization]{}, fmt.Errorf("count organizations: %w", err)
	}

	query := `SELECT ` + organizationColumns + ` FROM organizations o` + where + ` ORDER BY lower(o.name), o.id LIMIT ? OFFSET ?`
	rows, err := s.sqlDB.QueryContext(ctx, query, append(args, normalizeLimit(filter.Limit), max(filter.Offset, 0))...)
	if err != nil {
		return storage.Page[storage.Organization]{}, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return storage.Page[storage.Organization]{}, fmt.Errorf("scan organization: %w", err)
		}
		page.Items = append(page.Items, org)
	}
	if err := rows.Err(); err != nil {
		return storage.Page[storage.Organization]{}, fmt.Errorf("iterate organizations: %w", err)
	}
	return page, nil
}
