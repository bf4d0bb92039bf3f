package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Addr string        `env:"BACKOFFICE_TEST_ADDR" envDefault:"localhost:8090"`
	TTL  time.Duration `env:"BACKOFFICE_TEST_TTL" envDefault:"12h"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "localhost:8090" || cfg.TTL != 12*time.Hour {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("BACKOFFICE_TEST_TTL", "forever")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookup(t *testing.T) {
	t.Parallel()

	var cfg envTestConfig
	err := ParseEnvWithLookup(&cfg, map[string]string{"BACKOFFICE_TEST_ADDR": ":9000"})
	if err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Fatalf("addr = %q, want %q", cfg.Addr, ":9000")
	}
	if cfg.TTL != 12*time.Hour {
		t.Fatalf("ttl = %v, want default", cfg.TTL)
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" ^/a/ ,, ^/b$ ,")
	want := []string{"^/a/", "^/b$"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	if got := SplitList(""); len(got) != 0 {
		t.Fatalf("SplitList(empty) = %v", got)
	}
}
