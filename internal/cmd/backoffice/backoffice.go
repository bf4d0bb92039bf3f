// Package backoffice parses backoffice service configuration and launches
// the HTTP server.
package backoffice

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/backoffice/internal/platform/cmd"
	"github.com/louisbranch/backoffice/internal/platform/config"
	server "github.com/louisbranch/backoffice/internal/services/backoffice"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage/sqlite"
)

// devSessionSecret signs sessions when no secret is configured. Tokens
// signed with it do not survive a restart with a real secret.
const devSessionSecret = "backoffice-development-secret-change-me"

// Config holds backoffice command configuration.
type Config struct {
	HTTPAddr       string        `env:"BACKOFFICE_HTTP_ADDR" envDefault:"localhost:8090"`
	DBPath         string        `env:"BACKOFFICE_DB_PATH" envDefault:"data/backoffice.db"`
	SessionSecret  string        `env:"BACKOFFICE_SESSION_SECRET"`
	SessionTTL     time.Duration `env:"BACKOFFICE_SESSION_TTL" envDefault:"12h"`
	GateExclusions string        `env:"BACKOFFICE_GATE_EXCLUSIONS"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session token lifetime")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("session ttl must be positive")
	}
	return cfg, nil
}

// sessionSecret returns the configured secret, falling back to the
// development secret with a warning.
func (c Config) sessionSecret() []byte {
	secret := strings.TrimSpace(c.SessionSecret)
	if secret == "" {
		log.Printf("backoffice session secret not set; using the development secret")
		return []byte(devSessionSecret)
	}
	return []byte(secret)
}

// Run opens storage and serves the backoffice until ctx is canceled.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBackoffice, func(ctx context.Context) error {
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open backoffice store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("backoffice close store: %v", err)
			}
		}()

		sessions, err := sessiontoken.New(sessiontoken.Config{Secret: cfg.sessionSecret(), TTL: cfg.SessionTTL})
		if err != nil {
			return fmt.Errorf("init session tokens: %w", err)
		}

		srv, err := server.NewServer(ctx, server.Config{
			HTTPAddr:       cfg.HTTPAddr,
			Store:          store,
			Sessions:       sessions,
			GateExclusions: config.SplitList(cfg.GateExclusions),
		})
		if err != nil {
			return fmt.Errorf("init backoffice server: %w", err)
		}
		defer srv.Close()

		if err := srv.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve backoffice: %w", err)
		}
		return nil
	})
}
