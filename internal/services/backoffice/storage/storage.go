package storage

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict indicates a uniqueness or referential constraint failed.
	ErrConflict = errors.New("record conflict")
)

// Role is a user's permission level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

// Roles lists roles in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleMember}
}

// ParseRole returns the role named by raw.
func ParseRole(raw string) (Role, bool) {
	for _, role := range Roles() {
		if strings.EqualFold(strings.TrimSpace(raw), string(role)) {
			return role, true
		}
	}
	return "", false
}

// UserStatus is a user's account state.
type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInvited   UserStatus = "invited"
	UserSuspended UserStatus = "suspended"
)

// UserStatuses lists user statuses in display order.
func UserStatuses() []UserStatus {
	return []UserStatus{UserActive, UserInvited, UserSuspended}
}

// ParseUserStatus returns the status named by raw.
func ParseUserStatus(raw string) (UserStatus, bool) {
	for _, status := range UserStatuses() {
		if strings.EqualFold(strings.TrimSpace(raw), string(status)) {
			return status, true
		}
	}
	return "", false
}

// User is a backoffice account.
type User struct {
	ID               string
	Name             string
	Email            string
	Role             Role
	Status           UserStatus
	OrganizationID   string
	PasswordHash     string
	CreatedAt        time.Time
	LastLoginAt      time.Time
	OrganizationName string // filled by reads; writes ignore it
}

// Plan is an organization's subscription tier.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanStarter    Plan = "starter"
	PlanBusiness   Plan = "business"
	PlanEnterprise Plan = "enterprise"
)

// Plans lists plans in ascending price order.
func Plans() []Plan {
	return []Plan{PlanFree, PlanStarter, PlanBusiness, PlanEnterprise}
}

// ParsePlan returns the plan named by raw.
func ParsePlan(raw string) (Plan, bool) {
	for _, plan := range Plans() {
		if strings.EqualFold(strings.TrimSpace(raw), string(plan)) {
			return plan, true
		}
	}
	return "", false
}

// OrganizationStatus is an organization's lifecycle state.
type OrganizationStatus string

const (
	OrganizationActive  OrganizationStatus = "active"
	OrganizationTrial   OrganizationStatus = "trial"
	OrganizationChurned OrganizationStatus = "churned"
)

// OrganizationStatuses lists organization statuses in display order.
func OrganizationStatuses() []OrganizationStatus {
	return []OrganizationStatus{OrganizationActive, OrganizationTrial, OrganizationChurned}
}

// ParseOrganizationStatus returns the status named by raw.
func ParseOrganizationStatus(raw string) (OrganizationStatus, bool) {
	for _, status := range OrganizationStatuses() {
		if strings.EqualFold(strings.TrimSpace(raw), string(status)) {
			return status, true
		}
	}
	return "", false
}

// Organization is a customer account.
type Organization struct {
	ID                  string
	Name                string
	Slug                string
	Plan                Plan
	Status              OrganizationStatus
	Seats               int
	MonthlyRevenueCents int64
	Country             string
	CreatedAt           time.Time
	// MemberCount is filled by list and get queries; writes ignore it.
	MemberCount int
}

// PasswordReset is a single-use password reset grant.
type PasswordReset struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	UsedAt    time.Time
}

// Usable reports whether the reset can still be redeemed at now.
func (r PasswordReset) Usable(now time.Time) bool {
	return r.UsedAt.IsZero() && now.Before(r.ExpiresAt)
}

// UserFilter narrows user listings. Zero values mean "any".
type UserFilter struct {
	Query          string
	Status         UserStatus
	Role           Role
	OrganizationID string
	Limit          int
	Offset         int
}

// OrganizationFilter narrows organization listings.
type OrganizationFilter struct {
	Query  string
	Status OrganizationStatus
	Plan   Plan
	Limit  int
	Offset int
}

// Page is one window of a listing plus the unpaged total.
type Page[T any] struct {
	Items []T
	Total int
}

// UserStats summarizes the user table for dashboard widgets.
type UserStats struct {
	Total    int
	Active   int
	NewSince int
	ByRole   map[Role]int
}

// OrganizationStats summarizes organizations for dashboard widgets.
type OrganizationStats struct {
	Total        int
	Active       int
	RevenueCents int64
	ByPlan       map[Plan]int
}

// MonthCount is a per-month tally; Month is the first instant of the month
// in UTC.
type MonthCount struct {
	Month time.Time
	Count int
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, user User) error
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context, filter UserFilter) (Page[User], error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetPasswordHash(ctx context.Context, id string, hash string) error
}

// OrganizationStore persists organizations.
type OrganizationStore interface {
	CreateOrganization(ctx context.Context, org Organization) error
	UpdateOrganization(ctx context.Context, org Organization) error
	DeleteOrganization(ctx context.Context, id string) error
	GetOrganization(ctx context.Context, id string) (Organization, error)
	ListOrganizations(ctx context.Context, filter OrganizationFilter) (Page[Organization], error)
}

// PasswordResetStore persists reset grants.
type PasswordResetStore interface {
	PutPasswordReset(ctx context.Context, reset PasswordReset) error
	GetPasswordReset(ctx context.Context, token string) (PasswordReset, error)
	// ConsumePasswordReset marks the grant used and stores the new hash in
	// one transaction. A used or expired grant returns ErrNotFound.
	ConsumePasswordReset(ctx context.Context, token string, passwordHash string, now time.Time) error
}

// StatsStore answers dashboard aggregate queries.
type StatsStore interface {
	UserStats(ctx context.Context, since time.Time) (UserStats, error)
	OrganizationStats(ctx context.Context) (OrganizationStats, error)
	SignupsByMonth(ctx context.Context, from time.Time, months int) ([]MonthCount, error)
}

// Store is the composite backoffice store.
type Store interface {
	UserStore
	OrganizationStore
	PasswordResetStore
	StatsStore
	Close() error
}
