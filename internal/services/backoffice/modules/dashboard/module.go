// Package dashboard serves the summary page at the site root.
package dashboard

import (
	"net/http"

	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

// Module mounts the dashboard and owns unmatched paths.
type Module struct {
	store Store
}

// New returns the dashboard module backed by store.
func New(store Store) Module {
	return Module{store: store}
}

// ID returns the module identifier.
func (Module) ID() string { return "dashboard" }

// Mount registers the dashboard routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errMissingStore
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(service{store: m.store}, deps))
	return module.Mount{Prefixes: []string{routepath.Root}, Handler: mux}, nil
}
