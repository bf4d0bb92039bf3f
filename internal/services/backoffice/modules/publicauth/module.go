// Package publicauth serves the screens reachable without a session:
// sign in, sign up, password reset and sign out.
package publicauth

import (
	"net/http"

	"github.com/google/uuid"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"golang.org/x/crypto/bcrypt"
)

// Module mounts the public auth screens.
type Module struct {
	store      Store
	issuer     TokenIssuer
	bcryptCost int
	newID      func() string
	newToken   func() string
}

// Option customizes the module.
type Option func(*Module)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(m *Module) { m.bcryptCost = cost }
}

// WithIDGenerator replaces uuid generation for registered users.
func WithIDGenerator(newID func() string) Option {
	return func(m *Module) { m.newID = newID }
}

// WithTokenGenerator replaces uuid generation for reset tokens.
func WithTokenGenerator(newToken func() string) Option {
	return func(m *Module) { m.newToken = newToken }
}

// New returns the auth module. issuer signs the session cookie.
func New(store Store, issuer TokenIssuer, opts ...Option) Module {
	m := Module{
		store:      store,
		issuer:     issuer,
		bcryptCost: bcrypt.DefaultCost,
		newID:      uuid.NewString,
		newToken:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns the module identifier.
func (Module) ID() string { return "publicauth" }

// Mount registers the auth routes on exact paths.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.store == nil {
		return module.Mount{}, errMissingStore
	}
	if m.issuer == nil {
		return module.Mount{}, errMissingIssuer
	}
	svc := service{
		store:      m.store,
		now:        deps.Clock(),
		newID:      m.newID,
		newToken:   m.newToken,
		bcryptCost: m.bcryptCost,
	}
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(svc, m.issuer, deps))
	return module.Mount{
		Prefixes: []string{
			routepath.Login,
			routepath.Register,
			routepath.ForgotPassword,
			routepath.ResetPassword,
			routepath.Logout,
		},
		Handler: mux,
	}, nil
}
