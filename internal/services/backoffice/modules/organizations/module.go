// Package organizations serves the customer organization screens.
package organizations

import (
	"net/http"

	"github.com/google/uuid"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

// Module mounts the organizations screens.
type Module struct {
	store Store
	newID func() string
}

// Option customizes the module.
type Option func(*Module)

// WithIDGenerator replaces uuid generation for new organizations.
func WithIDGenerator(newID func() string) Option {
	return func(m *Module) { m.newID = newID }
}

// New returns the organizations module backed by store.
func New(store Store, opts ...Option) Module {
	m := Module{store: store, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns the module identifier.
func (Module) ID() string { return "organizations" }

// Mount registers the organizations routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errMissingStore
	}
	mux := http.NewServeMux()
	svc := service{store: m.store, now: deps.Clock(), newID: m.newID}
	registerRoutes(mux, newHandlers(svc, deps))
	return module.Mount{
		Prefixes: []string{routepath.Organizations, routepath.OrganizationsPrefix},
		Handler:  mux,
	}, nil
}
