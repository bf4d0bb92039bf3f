// Package api serves the JSON endpoints: a health probe and the composed
// theme tokens.
package api

import (
	"context"
	"errors"

	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

// Database is the storage surface the health probe reads.
type Database interface {
	Ping(context.Context) error
	Size(context.Context) (uint64, error)
}

// Module mounts /api/ routes.
type Module struct {
	db Database
}

// New returns the API module backed by db.
func New(db Database) Module {
	return Module{db: db}
}

// ID returns the module identifier.
func (Module) ID() string { return "api" }

// Mount registers the API routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if m.db == nil {
		return module.Mount{}, errMissingDatabase
	}
	h := handlers{db: m.db, now: deps.Clock(), resolveMode: deps.ResolveThemeMode}
	return module.Mount{Prefixes: []string{routepath.APIPrefix}, Handler: routes(h)}, nil
}

var errMissingDatabase = errors.New("api module requires a database")
