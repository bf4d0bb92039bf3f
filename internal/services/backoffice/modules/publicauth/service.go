package publicauth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTTL          = time.Hour
	minPasswordLength = 8
	maxNameLength     = 120
)

// Store is the persistence the auth screens depend on.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (storage.User, error)
	CreateUser(ctx context.Context, user storage.User) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	PutPasswordReset(ctx context.Context, reset storage.PasswordReset) error
	GetPasswordReset(ctx context.Context, token string) (storage.PasswordReset, error)
	ConsumePasswordReset(ctx context.Context, token string, passwordHash string, now time.Time) error
}

// TokenIssuer signs session tokens for signed-in users.
type TokenIssuer interface {
	Issue(identity sessiontoken.Identity) (string, time.Time, error)
	TTL() time.Duration
}

type service struct {
	store      Store
	now        func() time.Time
	newID      func() string
	newToken   func() string
	bcryptCost int
}

// authenticate checks credentials. Unknown emails, accounts without a
// password and wrong passwords share one error.
func (s service) authenticate(ctx context.Context, email, password string) (storage.User, error) {
	invalid := apperrors.EK(apperrors.KindUnauthorized, "auth.error.invalid_credentials", "invalid credentials")
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return storage.User{}, invalid
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.User{}, invalid
	}
	if err != nil {
		return storage.User{}, apperrors.Wrap(err, "load user for sign in")
	}
	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return storage.User{}, invalid
	}
	if user.Status == storage.UserSuspended {
		return storage.User{}, apperrors.EK(apperrors.KindForbidden, "auth.error.suspended", "account suspended")
	}
	if err := s.store.TouchLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		log.Printf("backoffice touch last login failed user_id=%s err=%v", user.ID, err)
	}
	return user, nil
}

// RegisterInput is a submitted sign-up form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

func (s service) register(ctx context.Context, input RegisterInput) (storage.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "auth.error.name_required", "name is required")
	}
	if len([]rune(name)) > maxNameLength {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "auth.error.name_too_long", "name is too long")
	}
	email, ok := normalizeEmail(input.Email)
	if !ok {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "auth.error.email_invalid", "email is invalid")
	}
	hash, err := s.newPasswordHash(input.Password, input.Confirm)
	if err != nil {
		return storage.User{}, err
	}
	now := s.now().UTC()
	user := storage.User{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		Role:         storage.RoleMember,
		Status:       storage.UserActive,
		PasswordHash: hash,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return storage.User{}, apperrors.Error{Kind: apperrors.KindConflict, Key: "auth.error.email_taken", Message: "email already registered", Err: err}
		}
		return storage.User{}, apperrors.Wrap(err, "register user")
	}
	return user, nil
}

// requestReset stores a reset grant for email when it names an active
// account and logs the link. Callers show the same confirmation whatever
// happens here.
func (s service) requestReset(ctx context.Context, email string) {
	email, ok := normalizeEmail(email)
	if !ok {
		return
	}
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("backoffice password reset lookup failed err=%v", err)
		}
		return
	}
	if user.Status == storage.UserSuspended {
		return
	}
	now := s.now().UTC()
	reset := storage.PasswordReset{
		Token:     s.newToken(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(resetTTL),
	}
	if err := s.store.PutPasswordReset(ctx, reset); err != nil {
		log.Printf("backoffice password reset store failed user_id=%s err=%v", user.ID, err)
		return
	}
	log.Printf("backoffice password reset link user_id=%s link=%s", user.ID, ResetLink(reset.Token))
}

// resetUsable reports whether token names an unexpired, unused grant.
func (s service) resetUsable(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	reset, err := s.store.GetPasswordReset(ctx, token)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, "load password reset")
	}
	return reset.Usable(s.now()), nil
}

func (s service) resetPassword(ctx context.Context, token, password, confirm string) error {
	hash, err := s.newPasswordHash(password, confirm)
	if err != nil {
		return err
	}
	err = s.store.ConsumePasswordReset(ctx, strings.TrimSpace(token), hash, s.now().UTC())
	if errors.Is(err, storage.ErrNotFound) {
		return errResetInvalid
	}
	if err != nil {
		return apperrors.Wrap(err, "reset password")
	}
	return nil
}

func (s service) newPasswordHash(password, confirm string) (string, error) {
	if len([]rune(password)) < minPasswordLength {
		return "", apperrors.EK(apperrors.KindInvalidInput, "auth.error.password_short", "password is too short")
	}
	if password != confirm {
		return "", apperrors.EK(apperrors.KindInvalidInput, "auth.error.password_mismatch", "passwords do not match")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// ResetLink is the path mailed to a user for token.
func ResetLink(token string) string {
	return routepath.ResetPassword + "?token=" + url.QueryEscape(token)
}

// SafeCallback returns raw when it is a local path outside the auth
// screens, and "/" otherwise.
func SafeCallback(raw string) string {
	raw = strings.TrimSpace(raw)
	if !httpx.LocalPath(raw) {
		return routepath.Root
	}
	path := raw
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, authPath := range []string{routepath.Login, routepath.Register, routepath.ForgotPassword, routepath.ResetPassword, routepath.Logout} {
		if path == authPath || strings.HasPrefix(path, authPath+"/") {
			return routepath.Root
		}
	}
	return raw
}

func normalizeEmail(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || addr.Name != "" {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}

var (
	errMissingStore  = errors.New("auth store is required")
	errMissingIssuer = errors.New("session token issuer is required")
	errResetInvalid  = errors.New("password reset is invalid or expired")
)
