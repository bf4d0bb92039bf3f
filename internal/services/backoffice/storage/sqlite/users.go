package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

const userColumns = `u.id, u.name, u.email, u.role, u.status, COALESCE(u.organization_id, ''),
	u.password_hash, u.created_at, u.last_login_at, COALESCE(o.name, '')`

const userFrom = ` FROM users u LEFT JOIN organizations o ON o.id = u.organization_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (storage.User, error) {
	var (
		user               storage.User
		role, status       string
		created, lastLogin int64
	)
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &role, &status, &user.OrganizationID,
		&user.PasswordHash, &created, &lastLogin, &user.OrganizationName); err != nil {
		return storage.User{}, err
	}
	user.Role = storage.Role(role)
	user.Status = storage.UserStatus(status)
	user.CreatedAt = fromMillis(created)
	user.LastLoginAt = fromMillis(lastLogin)
	return user, nil
}

// CreateUser inserts user. Email is stored lower-cased; a duplicate email
// or unknown organization returns storage.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(user.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO users
		(id, name, email, role, status, organization_id, password_hash, created_at, last_login_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, strings.TrimSpace(user.Name), normalizeEmail(user.Email), string(user.Role), string(user.Status),
		nullString(user.OrganizationID), user.PasswordHash, toMillis(user.CreatedAt), toMillis(user.LastLoginAt),
	)
	return mapWriteError("create user", err)
}

// UpdateUser rewrites the editable profile fields. Password hash and
// timestamps are left untouched.
func (s *Store) UpdateUser(ctx context.Context, user storage.User) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE users
		SET name = ?, email = ?, role = ?, status = ?, organization_id = ?
		WHERE id = ?`,
		strings.TrimSpace(user.Name), normalizeEmail(user.Email), string(user.Role), string(user.Status),
		nullString(user.OrganizationID), user.ID,
	)
	if err != nil {
		return mapWriteError("update user", err)
	}
	return requireAffected("update user", result)
}

// DeleteUser removes a user and their reset grants.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_resets WHERE user_id = ?`, id); err != nil {
		return fmt.Errorf("delete user resets: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("delete user", err)
	}
	if err := requireAffected("delete user", result); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user: %w", err)
	}
	return nil
}

// GetUser loads a user by id.
func (s *Store) GetUser(ctx context.Context, id string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+userFrom+` WHERE u.id = ?`, id)
	user, err := scanUser(row)
	if err != nil {
		return storage.User{}, mapReadError("get user", err)
	}
	return user, nil
}

// GetUserByEmail loads a user by case-insensitive email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (storage.User, error) {
	if err := s.ready(ctx); err != nil {
		return storage.User{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+userColumns+userFrom+` WHERE u.email = ?`, normalizeEmail(email))
	user, err := scanUser(row)
	if err != nil {
		return storage.User{}, mapReadError("get user by email", err)
	}
	return user, nil
}

// ListUsers returns users newest first.
func (s *Store) ListUsers(ctx context.Context, filter storage.UserFilter) (storage.Page[storage.User], error) {
	if err := s.ready(ctx); err != nil {
		return storage.Page[storage.User]{}, err
	}

	var (
		clauses []string
		args    []any
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		clauses = append(clauses, `(lower(u.name) LIKE ? ESCAPE '\' OR u.email LIKE ? ESCAPE '\')`)
		pattern := likePattern(q)
		args = append(args, pattern, pattern)
	}
	if filter.Status != "" {
		clauses = append(clauses, `u.status = ?`)
		args = append(args, string(filter.Status))
	}
	if filter.Role != "" {
		clauses = append(clauses, `u.role = ?`)
		args = append(args, string(filter.Role))
	}
	if filter.OrganizationID != "" {
		clauses = append(clauses, `u.organization_id = ?`)
		args = append(args, filter.OrganizationID)
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var page storage.Page[storage.User]
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*)`+userFrom+where, args...).Scan(&page.Total); err != nil {
		return storage.Page[storage.User]{}, fmt.Errorf("count users: %w", err)
	}

	query := `SELECT ` + userColumns + userFrom + where + ` ORDER BY u.created_at DESC, u.id LIMIT ? OFFSET ?`
	rows, err := s.sqlDB.QueryContext(ctx, query, append(args, normalizeLimit(filter.Limit), max(filter.Offset, 0))...)
	if err != nil {
		return storage.Page[storage.User]{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return storage.Page[storage.User]{}, fmt.Errorf("scan user: %w", err)
		}
		page.Items = append(page.Items, user)
	}
	if err := rows.Err(); err != nil {
		return storage.Page[storage.User]{}, fmt.Errorf("iterate users: %w", err)
	}
	return page, nil
}

// TouchLastLogin records a successful sign-in.
func (s *Store) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, toMillis(at), id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return requireAffected("touch last login", result)
}

// SetPasswordHash replaces a user's password hash.
func (s *Store) SetPasswordHash(ctx context.Context, id string, hash string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	return requireAffected("set password hash", result)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
