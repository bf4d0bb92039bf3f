package sqlite

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// Reset tokens are stored hashed; the raw token only travels in the link.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:])
}

// PutPasswordReset stores a new reset grant.
func (s *Store) PutPasswordReset(ctx context.Context, reset storage.PasswordReset) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(reset.Token) == "" {
		return fmt.Errorf("reset token is required")
	}
	if reset.CreatedAt.IsZero() {
		reset.CreatedAt = s.now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `INSERT INTO password_resets
		(token_hash, user_id, created_at, expires_at, used_at) VALUES (?, ?, ?, ?, 0)`,
		hashToken(reset.Token), reset.UserID, toMillis(reset.CreatedAt), toMillis(reset.ExpiresAt),
	)
	return mapWriteError("put password reset", err)
}

// GetPasswordReset loads a grant by raw token.
func (s *Store) GetPasswordReset(ctx context.Context, token string) (storage.PasswordReset, error) {
	if err := s.ready(ctx); err != nil {
		return storage.PasswordReset{}, err
	}
	var (
		reset                  storage.PasswordReset
		created, expires, used int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT user_id, created_at, expires_at, used_at FROM password_resets WHERE token_hash = ?`,
		hashToken(token),
	).Scan(&reset.UserID, &created, &expires, &used)
	if err != nil {
		return storage.PasswordReset{}, mapReadError("get password reset", err)
	}
	reset.Token = token
	reset.CreatedAt = fromMillis(created)
	reset.ExpiresAt = fromMillis(expires)
	reset.UsedAt = fromMillis(used)
	return reset, nil
}

// ConsumePasswordReset redeems a grant and sets the new password hash.
func (s *Store) ConsumePasswordReset(ctx context.Context, token string, passwordHash string, now time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin consume reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var userID string
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM password_resets WHERE token_hash = ? AND used_at = 0 AND expires_at > ?`,
		hashToken(token), toMillis(now),
	).Scan(&userID)
	if err != nil {
		return mapReadError("consume password reset", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE password_resets SET used_at = ? WHERE token_hash = ?`, toMillis(now), hashToken(token)); err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	result, err := tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("set password hash: %w", err)
	}
	if err := requireAffected("set password hash", result); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit consume reset: %w", err)
	}
	return nil
}
