package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/backoffice/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Parallel()

	shutdown, err := otel.Setup(context.Background(), "test-service", otel.Settings{Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	t.Parallel()

	settings := otel.Settings{Endpoint: "http://localhost:4318", Enabled: false}
	if settings.Active() {
		t.Fatal("expected disabled settings to be inactive")
	}
	shutdown, err := otel.Setup(context.Background(), "test-service", settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported because no spans are recorded.
	settings := otel.Settings{Endpoint: "http://192.0.2.1:4318", Enabled: true, SampleRatio: 0.5}

	shutdown, err := otel.Setup(context.Background(), "test-service", settings)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestLoadSettingsReadsEnv(t *testing.T) {
	t.Setenv("BACKOFFICE_OTEL_ENDPOINT", "http://collector:4318")
	t.Setenv("BACKOFFICE_OTEL_ENABLED", "false")

	settings, err := otel.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.Endpoint != "http://collector:4318" || settings.Enabled {
		t.Fatalf("unexpected settings: %+v", settings)
	}
	if settings.SampleRatio != 1 {
		t.Fatalf("sample ratio = %v, want 1", settings.SampleRatio)
	}
}
