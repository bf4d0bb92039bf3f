// Package users serves the user management screens: listing, detail,
// create, edit, delete and CSV export.
package users

import (
	"net/http"

	"github.com/google/uuid"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"golang.org/x/crypto/bcrypt"
)

// Module mounts the users screens.
type Module struct {
	store      Store
	bcryptCost int
	newID      func() string
}

// Option customizes the module.
type Option func(*Module)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(m *Module) { m.bcryptCost = cost }
}

// WithIDGenerator replaces uuid generation for new users.
func WithIDGenerator(newID func() string) Option {
	return func(m *Module) { m.newID = newID }
}

// New returns the users module backed by store.
func New(store Store, opts ...Option) Module {
	m := Module{store: store, bcryptCost: bcrypt.DefaultCost, newID: uuid.NewString}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns the module identifier.
func (Module) ID() string { return "users" }

// Mount registers the users routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errMissingStore
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(m.service(deps), deps))
	return module.Mount{
		Prefixes: []string{routepath.Users, routepath.UsersPrefix},
		Handler:  mux,
	}, nil
}

func (m Module) service(deps module.Dependencies) service {
	cost := m.bcryptCost
	return service{
		store: m.store,
		now:   deps.Clock(),
		newID: m.newID,
		hash: func(password string) (string, error) {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
			if err != nil {
				return "", err
			}
			return string(hash), nil
		},
	}
}
