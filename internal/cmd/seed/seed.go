// Package seed fills a backoffice database with demo organizations and
// users.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/backoffice/internal/platform/cmd"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage/sqlite"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsers         = 5000
	maxOrganizations = 500
)

// Config holds seed command configuration.
type Config struct {
	DBPath        string `env:"BACKOFFICE_DB_PATH" envDefault:"data/backoffice.db"`
	AdminEmail    string `env:"BACKOFFICE_SEED_ADMIN_EMAIL" envDefault:"admin@example.com"`
	AdminPassword string `env:"BACKOFFICE_SEED_ADMIN_PASSWORD" envDefault:"backoffice-admin"`
	Users         int
	Organizations int
	Seed          int64
	Verbose       bool
	// BcryptCost overrides the admin password hashing cost; tests only.
	BcryptCost int
	// Now anchors generated timestamps; zero means time.Now.
	Now time.Time
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "email of the seeded admin account")
	fs.IntVar(&cfg.Users, "users", 60, "number of demo users besides the admin")
	fs.IntVar(&cfg.Organizations, "organizations", 12, "number of demo organizations")
	fs.Int64Var(&cfg.Seed, "seed", 1, "random seed for reproducible data")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.AdminEmail) == "" {
		return errors.New("admin email is required")
	}
	if len(c.AdminPassword) < 8 {
		return errors.New("admin password must have at least 8 characters")
	}
	if c.Users < 0 || c.Users > maxUsers {
		return fmt.Errorf("users must be between 0 and %d", maxUsers)
	}
	if c.Organizations < 0 || c.Organizations > maxOrganizations {
		return fmt.Errorf("organizations must be between 0 and %d", maxOrganizations)
	}
	return nil
}

// Run executes the seed command against the configured database.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open backoffice store: %w", err)
		}
		defer store.Close()
		return Populate(ctx, store, cfg, out)
	})
}

// Store is the storage surface the seeder writes through.
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (storage.User, error)
	CreateUser(ctx context.Context, user storage.User) error
	CreateOrganization(ctx context.Context, org storage.Organization) error
}

// Populate writes the admin account and demo data. A database that already
// holds the admin account is left untouched.
func Populate(ctx context.Context, store Store, cfg Config, out io.Writer) error {
	if store == nil {
		return errors.New("store is required")
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	if out == nil {
		out = io.Discard
	}
	if cfg.Now.IsZero() {
		cfg.Now = time.Now().UTC()
	}
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	adminEmail := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if _, err := store.GetUserByEmail(ctx, adminEmail); err == nil {
		fmt.Fprintf(out, "Database already seeded (found %s); nothing to do.\n", adminEmail)
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), cost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	data := generate(cfg.Seed, cfg.Now, cfg.Organizations, cfg.Users, adminEmail)
	data.admin.PasswordHash = string(hash)

	for _, org := range data.organizations {
		if err := store.CreateOrganization(ctx, org); err != nil {
			return fmt.Errorf("create organization %s: %w", org.Slug, err)
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "  organization %s (%s, %s)\n", org.Name, org.Plan, org.Status)
		}
	}
	if err := store.CreateUser(ctx, data.admin); err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}
	for _, user := range data.users {
		if err := store.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", user.Email, err)
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "  user %s <%s> %s/%s\n", user.Name, user.Email, user.Role, user.Status)
		}
	}

	fmt.Fprintf(out, "Seeded %d organizations and %d users.\n", len(data.organizations), len(data.users)+1)
	fmt.Fprintf(out, "Sign in as %s with the configured admin password.\n", adminEmail)
	return nil
}
