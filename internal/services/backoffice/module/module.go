// Package module defines the contract backoffice feature modules implement
// to be mounted on the root mux.
package module

import (
	"net/http"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/platform/theme"
)

// ResolveViewer returns the identity rendering a request.
type ResolveViewer func(*http.Request) requestctx.Viewer

// ResolveThemeMode returns the palette mode a request prefers.
type ResolveThemeMode func(*http.Request) theme.Mode

// Dependencies carries request resolvers shared by every module.
type Dependencies struct {
	ResolveViewer    ResolveViewer
	ResolveThemeMode ResolveThemeMode
	Now              func() time.Time
}

// Clock returns Now, defaulting to time.Now.
func (d Dependencies) Clock() func() time.Time {
	if d.Now == nil {
		return time.Now
	}
	return d.Now
}

// Mount is a module's root-mux registration. Each prefix is registered as a
// ServeMux pattern pointing at Handler.
type Mount struct {
	Prefixes []string
	Handler  http.Handler
}

// Module is one mountable feature area.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
