package backoffice

import (
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "localhost:8090" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, "localhost:8090")
	}
	if cfg.DBPath != "data/backoffice.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("SessionTTL = %s", cfg.SessionTTL)
	}
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("BACKOFFICE_HTTP_ADDR", "0.0.0.0:9000")
	t.Setenv("BACKOFFICE_SESSION_TTL", "30m")
	t.Setenv("BACKOFFICE_GATE_EXCLUSIONS", `^/static/, ^/healthz$`)

	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-db-path", "/tmp/bo.db"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "0.0.0.0:9000" || cfg.DBPath != "/tmp/bo.db" || cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.GateExclusions != `^/static/, ^/healthz$` {
		t.Fatalf("GateExclusions = %q", cfg.GateExclusions)
	}
}

func TestParseConfigRejectsNonPositiveTTL(t *testing.T) {
	fs := flag.NewFlagSet("backoffice", flag.ContinueOnError)
	if _, err := ParseConfig(fs, []string{"-session-ttl", "0s"}); err == nil {
		t.Fatal("expected ttl error")
	}
}

func TestSessionSecretFallsBackToDevelopmentSecret(t *testing.T) {
	t.Parallel()

	if got := string((Config{}).sessionSecret()); got != devSessionSecret {
		t.Fatalf("secret = %q", got)
	}
	if got := string((Config{SessionSecret: " s3cret-value-0123456 "}).sessionSecret()); got != "s3cret-value-0123456" {
		t.Fatalf("secret = %q", got)
	}
}
