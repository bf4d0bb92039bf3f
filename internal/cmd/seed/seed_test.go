package seed

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage/sqlite"
	"golang.org/x/crypto/bcrypt"
)

var seedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DBPath != "data/backoffice.db" || cfg.AdminEmail != "admin@example.com" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Users != 60 || cfg.Organizations != 12 || cfg.Seed != 1 {
		t.Fatalf("counts = %d/%d seed %d", cfg.Users, cfg.Organizations, cfg.Seed)
	}
}

func TestParseConfigRejectsOutOfRangeCounts(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-users", "-1"}); err == nil {
		t.Fatal("expected users range error")
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	a := generate(7, seedNow, 20, 40, "admin@example.com")
	b := generate(7, seedNow, 20, 40, "admin@example.com")
	if !reflect.DeepEqual(a, b) {
		t.Fatal("expected equal datasets for equal seeds")
	}
	c := generate(8, seedNow, 20, 40, "admin@example.com")
	if reflect.DeepEqual(a.users, c.users) {
		t.Fatal("expected different seeds to produce different users")
	}
}

func TestGenerateProducesValidRecords(t *testing.T) {
	t.Parallel()

	data := generate(3, seedNow, 20, 100, "admin@example.com")
	slugs := map[string]bool{}
	orgIDs := map[string]bool{}
	for _, org := range data.organizations {
		if slugs[org.Slug] {
			t.Fatalf("duplicate slug %q", org.Slug)
		}
		slugs[org.Slug] = true
		orgIDs[org.ID] = true
		if org.Status != storage.OrganizationActive && org.MonthlyRevenueCents != 0 {
			t.Fatalf("%s: inactive organization has revenue", org.Slug)
		}
		if org.CreatedAt.After(seedNow) {
			t.Fatalf("%s: created in the future", org.Slug)
		}
	}
	if !slugs["cafe-labs"] && !slugs["cafe-systems"] && !slugs["cafe-logistics"] {
		t.Fatalf("expected the accented prefix to be slugified, got %v", slugs)
	}

	emails := map[string]bool{}
	for _, user := range data.users {
		if emails[user.Email] {
			t.Fatalf("duplicate email %q", user.Email)
		}
		emails[user.Email] = true
		if user.OrganizationID != "" && !orgIDs[user.OrganizationID] {
			t.Fatalf("%s: unknown organization", user.Email)
		}
		if user.Status != storage.UserActive && !user.LastLoginAt.IsZero() {
			t.Fatalf("%s: inactive user has a last login", user.Email)
		}
		if !user.LastLoginAt.IsZero() && (user.LastLoginAt.Before(user.CreatedAt) || user.LastLoginAt.After(seedNow)) {
			t.Fatalf("%s: last login %s outside [%s, %s]", user.Email, user.LastLoginAt, user.CreatedAt, seedNow)
		}
	}
}

func TestPopulateWritesOnceAndAdminCanSignIn(t *testing.T) {
	t.Parallel()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	cfg := Config{
		AdminEmail:    "Admin@Example.com",
		AdminPassword: "backoffice-admin",
		Users:         15,
		Organizations: 5,
		Seed:          1,
		BcryptCost:    bcrypt.MinCost,
		Now:           seedNow,
	}
	var out bytes.Buffer
	if err := Populate(context.Background(), store, cfg, &out); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if !strings.Contains(out.String(), "Seeded 5 organizations and 16 users.") {
		t.Fatalf("output = %q", out.String())
	}

	ctx := context.Background()
	admin, err := store.GetUserByEmail(ctx, "admin@example.com")
	if err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	if admin.Role != storage.RoleAdmin || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("backoffice-admin")) != nil {
		t.Fatalf("admin = %+v", admin)
	}
	page, err := store.ListUsers(ctx, storage.UserFilter{Limit: 100})
	if err != nil || page.Total != 16 {
		t.Fatalf("users total = %d err = %v", page.Total, err)
	}

	out.Reset()
	if err := Populate(ctx, store, cfg, &out); err != nil {
		t.Fatalf("second Populate: %v", err)
	}
	if !strings.Contains(out.String(), "already seeded") {
		t.Fatalf("second output = %q", out.String())
	}
	if page, _ := store.ListUsers(ctx, storage.UserFilter{Limit: 100}); page.Total != 16 {
		t.Fatalf("users after reseed = %d", page.Total)
	}
}
