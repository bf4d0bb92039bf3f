// Package modules lists the backoffice feature modules in mount order.
package modules

import (
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/api"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/assets"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/dashboard"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/organizations"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/preferences"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/publicauth"
	"github.com/louisbranch/backoffice/internal/services/backoffice/modules/users"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
)

// Store is the storage surface every module shares.
type Store interface {
	storage.Store
	api.Database
}

// Registry builds module groups from shared services.
type Registry struct {
	Store  Store
	Issuer publicauth.TokenIssuer
	// BcryptCost overrides the password hashing cost; zero keeps the default.
	BcryptCost int
}

// PublicModules returns modules reachable without a session: sign-in
// screens, static assets and the JSON API.
func (r Registry) PublicModules() []module.Module {
	var authOpts []publicauth.Option
	if r.BcryptCost > 0 {
		authOpts = append(authOpts, publicauth.WithBcryptCost(r.BcryptCost))
	}
	return []module.Module{
		publicauth.New(r.Store, r.Issuer, authOpts...),
		assets.New(),
		api.New(r.Store),
	}
}

// ProtectedModules returns modules that require a signed-in viewer.
func (r Registry) ProtectedModules() []module.Module {
	var userOpts []users.Option
	if r.BcryptCost > 0 {
		userOpts = append(userOpts, users.WithBcryptCost(r.BcryptCost))
	}
	return []module.Module{
		dashboard.New(r.Store),
		users.New(r.Store, userOpts...),
		organizations.New(r.Store),
		preferences.New(),
	}
}
