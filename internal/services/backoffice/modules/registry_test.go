package modules

import (
	"context"
	"testing"
	"time"

	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// registryStore satisfies Store; Mount never calls it.
type registryStore struct {
	storage.Store
}

func (registryStore) Ping(context.Context) error { return nil }

func (registryStore) Size(context.Context) (uint64, error) { return 0, nil }

func testRegistry(t *testing.T) Registry {
	t.Helper()
	issuer, err := sessiontoken.New(sessiontoken.Config{Secret: []byte("registry-secret-0123456789"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return Registry{Store: registryStore{}, Issuer: issuer, BcryptCost: 4}
}

func TestRegistryModulesMountWithoutOverlap(t *testing.T) {
	t.Parallel()

	registry := testRegistry(t)
	groups := map[string][]module.Module{
		"public":    registry.PublicModules(),
		"protected": registry.ProtectedModules(),
	}
	wantIDs := map[string][]string{
		"public":    {"publicauth", "assets", "api"},
		"protected": {"dashboard", "users", "organizations", "preferences"},
	}

	owners := make(map[string]string)
	for group, mods := range groups {
		if len(mods) != len(wantIDs[group]) {
			t.Fatalf("%s modules = %d, want %d", group, len(mods), len(wantIDs[group]))
		}
		for i, mod := range mods {
			if mod.ID() != wantIDs[group][i] {
				t.Fatalf("%s[%d] = %q, want %q", group, i, mod.ID(), wantIDs[group][i])
			}
			mount, err := mod.Mount(module.Dependencies{Now: time.Now})
			if err != nil {
				t.Fatalf("mount %s: %v", mod.ID(), err)
			}
			if mount.Handler == nil || len(mount.Prefixes) == 0 {
				t.Fatalf("mount %s: empty mount", mod.ID())
			}
			for _, prefix := range mount.Prefixes {
				if owner, ok := owners[prefix]; ok {
					t.Fatalf("prefix %q mounted by %s and %s", prefix, owner, mod.ID())
				}
				owners[prefix] = mod.ID()
			}
		}
	}
	for _, prefix := range []string{"/", "/login", "/users/", "/organizations/", "/preferences/", "/api/", "/static/"} {
		if _, ok := owners[prefix]; !ok {
			t.Fatalf("prefix %q is not mounted", prefix)
		}
	}
}

func TestRegistryWithoutIssuerFailsMount(t *testing.T) {
	t.Parallel()

	registry := Registry{Store: registryStore{}}
	for _, mod := range registry.PublicModules() {
		if mod.ID() != "publicauth" {
			continue
		}
		if _, err := mod.Mount(module.Dependencies{}); err == nil {
			t.Fatal("expected publicauth mount to fail without an issuer")
		}
		return
	}
	t.Fatal("publicauth module missing")
}

