// Package assets serves the embedded stylesheet and images plus the
// generated theme stylesheet.
package assets

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/louisbranch/backoffice/internal/platform/theme"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/themepref"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/static"
)

const (
	logoFile     = "logo.svg"
	cacheControl = "public, max-age=3600"
)

// Module mounts static asset routes.
type Module struct {
	files fs.FS
}

// New returns the assets module serving the embedded files.
func New() Module {
	return Module{files: static.FS}
}

// ID returns the module identifier.
func (Module) ID() string { return "assets" }

// Mount registers asset routes.
func (m Module) Mount(deps module.Dependencies) (module.Mount, error) {
	images, err := fs.Sub(m.files, "images")
	if err != nil {
		return module.Mount{}, fmt.Errorf("open images: %w", err)
	}
	resolveMode := deps.ResolveThemeMode
	if resolveMode == nil {
		resolveMode = themepref.Read
	}

	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.ThemeCSS, themeCSS(resolveMode))
	mux.Handle(http.MethodGet+" "+routepath.StaticPrefix, cached(http.StripPrefix(routepath.StaticPrefix, serveFiles(m.files))))
	mux.Handle(http.MethodGet+" "+routepath.ImagesPrefix, cached(http.StripPrefix(routepath.ImagesPrefix, serveFiles(images))))
	mux.HandleFunc(http.MethodGet+" "+routepath.Favicon, favicon(images))
	for _, prefix := range []string{routepath.StaticPrefix, routepath.ImagesPrefix, routepath.Favicon} {
		mux.HandleFunc(prefix, httpx.MethodNotAllowed(http.MethodGet, http.MethodHead))
	}
	return module.Mount{
		Prefixes: []string{routepath.StaticPrefix, routepath.ImagesPrefix, routepath.Favicon},
		Handler:  mux,
	}, nil
}

// themeCSS renders the composed theme for ?mode= and ?dir=, falling back to
// the stored preference when mode is absent.
func themeCSS(resolveMode module.ResolveThemeMode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		mode := resolveMode(r)
		if raw := query.Get("mode"); raw != "" {
			mode = theme.ParseMode(raw)
		}
		css := theme.Compose(mode, theme.ParseDirection(query.Get("dir"))).CSS()
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Add("Vary", "Cookie")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(css))
	}
}

// serveFiles serves regular files from fsys. Directories are not listed.
func serveFiles(fsys fs.FS) http.Handler {
	server := http.FileServer(http.FS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info, err := fs.Stat(fsys, r.URL.Path)
		if r.URL.Path == "" || err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		server.ServeHTTP(w, r)
	})
}

func favicon(images fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(images, logoFile)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", cacheControl)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func cached(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		next.ServeHTTP(w, r)
	})
}
