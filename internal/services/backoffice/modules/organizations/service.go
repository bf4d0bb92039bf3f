package organizations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PageSize is the number of organizations per listing page.
const PageSize = 20

const (
	exportLimit        = 10000
	memberLimit        = 100
	maxNameLength      = 120
	maxSlugLength      = 64
	maxSeats           = 1_000_000
	defaultListingPage = 1
)

// Store is the persistence the organizations module depends on.
type Store interface {
	CreateOrganization(ctx context.Context, org storage.Organization) error
	UpdateOrganization(ctx context.Context, org storage.Organization) error
	DeleteOrganization(ctx context.Context, id string) error
	GetOrganization(ctx context.Context, id string) (storage.Organization, error)
	ListOrganizations(ctx context.Context, filter storage.OrganizationFilter) (storage.Page[storage.Organization], error)
	ListUsers(ctx context.Context, filter storage.UserFilter) (storage.Page[storage.User], error)
}

// Input is a submitted organization form.
type Input struct {
	Name    string
	Slug    string
	Plan    string
	Status  string
	Seats   string
	Revenue string
	Country string
}

// ListQuery is a parsed listing request.
type ListQuery struct {
	Query  string
	Status storage.OrganizationStatus
	Plan   storage.Plan
	Page   int
}

func (q ListQuery) filter(limit, offset int) storage.OrganizationFilter {
	return storage.OrganizationFilter{
		Query:  q.Query,
		Status: q.Status,
		Plan:   q.Plan,
		Limit:  limit,
		Offset: offset,
	}
}

type service struct {
	store Store
	now   func() time.Time
	newID func() string
}

func (s service) list(ctx context.Context, q ListQuery) (storage.Page[storage.Organization], error) {
	page := max(q.Page, defaultListingPage)
	result, err := s.store.ListOrganizations(ctx, q.filter(PageSize, (page-1)*PageSize))
	if err != nil {
		return storage.Page[storage.Organization]{}, apperrors.Wrap(err, "list organizations")
	}
	return result, nil
}

func (s service) exportAll(ctx context.Context, q ListQuery) ([]storage.Organization, error) {
	result, err := s.store.ListOrganizations(ctx, q.filter(exportLimit, 0))
	if err != nil {
		return nil, apperrors.Wrap(err, "export organizations")
	}
	return result.Items, nil
}

func (s service) get(ctx context.Context, id string) (storage.Organization, error) {
	org, err := s.store.GetOrganization(ctx, strings.TrimSpace(id))
	if err != nil {
		return storage.Organization{}, apperrors.Wrap(err, "get organization")
	}
	return org, nil
}

func (s service) members(ctx context.Context, orgID string) ([]storage.User, error) {
	result, err := s.store.ListUsers(ctx, storage.UserFilter{OrganizationID: orgID, Limit: memberLimit})
	if err != nil {
		return nil, apperrors.Wrap(err, "list organization members")
	}
	return result.Items, nil
}

func (s service) create(ctx context.Context, input Input) (storage.Organization, error) {
	org, err := validate(input, true)
	if err != nil {
		return storage.Organization{}, err
	}
	org.ID = s.newID()
	org.CreatedAt = s.now().UTC()
	if err := s.store.CreateOrganization(ctx, org); err != nil {
		return storage.Organization{}, mapWriteError(err, "create organization")
	}
	return org, nil
}

func (s service) update(ctx context.Context, id string, input Input) (storage.Organization, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return storage.Organization{}, err
	}
	org, err := validate(input, false)
	if err != nil {
		return storage.Organization{}, err
	}
	org.ID = existing.ID
	org.CreatedAt = existing.CreatedAt
	org.MemberCount = existing.MemberCount
	if err := s.store.UpdateOrganization(ctx, org); err != nil {
		return storage.Organization{}, mapWriteError(err, "update organization")
	}
	return org, nil
}

func (s service) delete(ctx context.Context, id string) error {
	err := s.store.DeleteOrganization(ctx, strings.TrimSpace(id))
	if errors.Is(err, storage.ErrConflict) {
		return apperrors.Error{Kind: apperrors.KindConflict, Key: "organizations.error.has_members", Message: "organization still has members", Err: err}
	}
	if err != nil {
		return apperrors.Wrap(err, "delete organization")
	}
	return nil
}

// validate normalizes input into an organization record. A blank slug is
// derived from the name; a blank status defaults to trial on create.
func validate(input Input, creating bool) (storage.Organization, error) {
	org := storage.Organization{Name: strings.TrimSpace(input.Name)}
	if org.Name == "" {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.name_required", "name is required")
	}
	if len([]rune(org.Name)) > maxNameLength {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.name_too_long", "name is too long")
	}

	slugSource := input.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = org.Name
	}
	org.Slug = Slugify(slugSource)
	if org.Slug == "" || len(org.Slug) > maxSlugLength {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.slug_invalid", "slug is invalid")
	}

	plan, ok := storage.ParsePlan(input.Plan)
	if !ok {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.plan_invalid", "plan is invalid")
	}
	org.Plan = plan

	status, ok := storage.ParseOrganizationStatus(input.Status)
	if !ok {
		if !creating || strings.TrimSpace(input.Status) != "" {
			return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.status_invalid", "status is invalid")
		}
		status = storage.OrganizationTrial
	}
	org.Status = status

	seats, ok := parseSeats(input.Seats)
	if !ok {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.seats_invalid", "seats must be a non-negative whole number")
	}
	org.Seats = seats

	cents, ok := ParseCents(input.Revenue)
	if !ok {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.revenue_invalid", "revenue must be a non-negative amount")
	}
	org.MonthlyRevenueCents = cents

	country, ok := parseCountry(input.Country)
	if !ok {
		return storage.Organization{}, apperrors.EK(apperrors.KindInvalidInput, "organizations.error.country_invalid", "country must be a two-letter code")
	}
	org.Country = country
	return org, nil
}

// Slugify lowers raw, strips accents and joins alphanumeric runs with "-".
func Slugify(raw string) string {
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), raw)
	if err != nil {
		stripped = raw
	}
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	return b.String()
}

// ParseCents reads a decimal currency amount such as "1,250.5" into cents.
// Blank input is zero.
func ParseCents(raw string) (int64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	raw = strings.TrimPrefix(raw, "$")
	if raw == "" {
		return 0, true
	}
	whole, frac, hasFrac := strings.Cut(raw, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2) {
		return 0, false
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, false
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars > (1<<62)/100 {
		return 0, false
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return dollars*100 + cents, true
}

// FormatCents renders cents as a plain decimal amount for form values.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func parseSeats(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	seats, err := strconv.Atoi(raw)
	if err != nil || seats < 0 || seats > maxSeats {
		return 0, false
	}
	return seats, true
}

// parseCountry accepts an ISO 3166-1 alpha-2 country code or blank.
func parseCountry(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	if len(raw) != 2 {
		return "", false
	}
	region, err := language.ParseRegion(raw)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	return region.String(), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func mapWriteError(err error, op string) error {
	if errors.Is(err, storage.ErrConflict) {
		return apperrors.Error{Kind: apperrors.KindConflict, Key: "organizations.error.slug_taken", Message: op + ": slug already in use", Err: err}
	}
	return apperrors.Wrap(err, op)
}

func totalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

var errMissingStore = fmt.Errorf("organizations store is required")
