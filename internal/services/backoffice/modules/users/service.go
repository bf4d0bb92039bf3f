package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// PageSize is the number of users per listing page.
const PageSize = 20

const (
	exportLimit        = 10000
	organizationLimit  = 500
	minPasswordLength  = 8
	maxNameLength      = 120
	defaultListingPage = 1
)

// Store is the persistence the users module depends on.
type Store interface {
	CreateUser(ctx context.Context, user storage.User) error
	UpdateUser(ctx context.Context, user storage.User) error
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (storage.User, error)
	ListUsers(ctx context.Context, filter storage.UserFilter) (storage.Page[storage.User], error)
	GetOrganization(ctx context.Context, id string) (storage.Organization, error)
	ListOrganizations(ctx context.Context, filter storage.OrganizationFilter) (storage.Page[storage.Organization], error)
}

// Input is a submitted user form.
type Input struct {
	Name           string
	Email          string
	Role           string
	Status         string
	OrganizationID string
	Password       string
}

// ListQuery is a parsed listing request.
type ListQuery struct {
	Query  string
	Status storage.UserStatus
	Role   storage.Role
	Page   int
}

func (q ListQuery) filter(limit, offset int) storage.UserFilter {
	return storage.UserFilter{
		Query:  q.Query,
		Status: q.Status,
		Role:   q.Role,
		Limit:  limit,
		Offset: offset,
	}
}

type service struct {
	store Store
	now   func() time.Time
	newID func() string
	hash  func(string) (string, error)
}

func (s service) list(ctx context.Context, q ListQuery) (storage.Page[storage.User], error) {
	page := max(q.Page, defaultListingPage)
	result, err := s.store.ListUsers(ctx, q.filter(PageSize, (page-1)*PageSize))
	if err != nil {
		return storage.Page[storage.User]{}, apperrors.Wrap(err, "list users")
	}
	return result, nil
}

func (s service) exportAll(ctx context.Context, q ListQuery) ([]storage.User, error) {
	result, err := s.store.ListUsers(ctx, q.filter(exportLimit, 0))
	if err != nil {
		return nil, apperrors.Wrap(err, "export users")
	}
	return result.Items, nil
}

func (s service) get(ctx context.Context, id string) (storage.User, error) {
	user, err := s.store.GetUser(ctx, strings.TrimSpace(id))
	if err != nil {
		return storage.User{}, apperrors.Wrap(err, "get user")
	}
	return user, nil
}

func (s service) organizations(ctx context.Context) ([]storage.Organization, error) {
	result, err := s.store.ListOrganizations(ctx, storage.OrganizationFilter{Limit: organizationLimit})
	if err != nil {
		return nil, apperrors.Wrap(err, "list organizations")
	}
	return result.Items, nil
}

func (s service) create(ctx context.Context, input Input) (storage.User, error) {
	user, err := s.validate(ctx, input, true)
	if err != nil {
		return storage.User{}, err
	}
	user.ID = s.newID()
	user.CreatedAt = s.now().UTC()
	if input.Password != "" {
		hash, err := s.hash(input.Password)
		if err != nil {
			return storage.User{}, apperrors.Wrap(err, "hash password")
		}
		user.PasswordHash = hash
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return storage.User{}, mapWriteError(err, "create user")
	}
	return user, nil
}

func (s service) update(ctx context.Context, id string, input Input) (storage.User, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return storage.User{}, err
	}
	user, err := s.validate(ctx, input, false)
	if err != nil {
		return storage.User{}, err
	}
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Role = user.Role
	existing.Status = user.Status
	existing.OrganizationID = user.OrganizationID
	if input.Password != "" {
		hash, err := s.hash(input.Password)
		if err != nil {
			return storage.User{}, apperrors.Wrap(err, "hash password")
		}
		existing.PasswordHash = hash
	}
	if err := s.store.UpdateUser(ctx, existing); err != nil {
		return storage.User{}, mapWriteError(err, "update user")
	}
	return existing, nil
}

func (s service) delete(ctx context.Context, actorID, id string) error {
	id = strings.TrimSpace(id)
	if id != "" && id == strings.TrimSpace(actorID) {
		return apperrors.EK(apperrors.KindConflict, "users.error.delete_self", "cannot delete the signed-in user")
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return apperrors.Wrap(err, "delete user")
	}
	return nil
}

// validate normalizes input into a user record. The password is checked
// only when present; creating a user without one leaves the account unable
// to sign in until a reset.
func (s service) validate(ctx context.Context, input Input, creating bool) (storage.User, error) {
	user := storage.User{
		Name:           strings.TrimSpace(input.Name),
		OrganizationID: strings.TrimSpace(input.OrganizationID),
	}
	if user.Name == "" {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.name_required", "name is required")
	}
	if len([]rune(user.Name)) > maxNameLength {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.name_too_long", "name is too long")
	}
	email, ok := normalizeEmail(input.Email)
	if !ok {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.email_invalid", "email is invalid")
	}
	user.Email = email

	role, ok := storage.ParseRole(input.Role)
	if !ok {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.role_invalid", "role is invalid")
	}
	user.Role = role

	status, ok := storage.ParseUserStatus(input.Status)
	if !ok {
		if !creating || strings.TrimSpace(input.Status) != "" {
			return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.status_invalid", "status is invalid")
		}
		status = storage.UserInvited
	}
	user.Status = status

	if input.Password != "" && len([]rune(input.Password)) < minPasswordLength {
		return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.password_short", "password is too short")
	}

	if user.OrganizationID != "" {
		if _, err := s.store.GetOrganization(ctx, user.OrganizationID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return storage.User{}, apperrors.EK(apperrors.KindInvalidInput, "users.error.organization_unknown", "organization does not exist")
			}
			return storage.User{}, apperrors.Wrap(err, "get organization")
		}
	}
	return user, nil
}

func mapWriteError(err error, op string) error {
	if errors.Is(err, storage.ErrConflict) {
		return apperrors.Error{Kind: apperrors.KindConflict, Key: "users.error.email_taken", Message: op + ": email already registered", Err: err}
	}
	return apperrors.Wrap(err, op)
}

// normalizeEmail accepts a bare address and returns it lower-cased.
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

func totalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

var errMissingStore = fmt.Errorf("users store is required")
