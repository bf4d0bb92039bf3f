// Package app composes backoffice modules into the root HTTP handler.
package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/backoffice/internal/services/backoffice/gate"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/requestmeta"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessioncookie"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

// ComposeInput carries module groups and shared composition contracts.
type ComposeInput struct {
	Dependencies module.Dependencies
	// Authenticated reports whether the request carries a verified session.
	Authenticated func(*http.Request) bool
	// IsPublic reports whether a path is reachable without a session.
	// Protected modules may not mount on public paths.
	IsPublic         func(string) bool
	PublicModules    []module.Module
	ProtectedModules []module.Module
}

// Composer wires root mux mounts and route-group auth behavior.
type Composer struct{}

// Compose builds a root HTTP handler from module groups.
func (Composer) Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	if input.Authenticated == nil {
		input.Authenticated = func(*http.Request) bool { return false }
	}
	if input.IsPublic == nil {
		input.IsPublic = func(string) bool { return false }
	}
	seen := make(map[string]string)

	publicWrap := requireCookieSessionSameOrigin()
	for _, feature := range input.PublicModules {
		if feature == nil {
			return nil, fmt.Errorf("public module is nil")
		}
		if err := mountModule(root, feature, input.Dependencies, seen, publicWrap, nil); err != nil {
			return nil, err
		}
	}

	protectedWrap := wrapProtectedModule(input.Authenticated)
	for _, feature := range input.ProtectedModules {
		if feature == nil {
			return nil, fmt.Errorf("protected module is nil")
		}
		if err := mountModule(root, feature, input.Dependencies, seen, protectedWrap, input.IsPublic); err != nil {
			return nil, err
		}
	}

	return root, nil
}

func mountModule(
	root *http.ServeMux,
	feature module.Module,
	deps module.Dependencies,
	seen map[string]string,
	wrap func(http.Handler) http.Handler,
	rejectPrefix func(string) bool,
) error {
	mount, prefixes, err := resolveMount(feature, deps)
	if err != nil {
		return err
	}
	handler := mount.Handler
	if wrap != nil {
		handler = wrap(handler)
	}
	for _, prefix := range prefixes {
		if rejectPrefix != nil && rejectPrefix(prefix) {
			return fmt.Errorf("module %q has public prefix %q in protected group", feature.ID(), prefix)
		}
		if previous, ok := seen[prefix]; ok {
			return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
		}
		seen[prefix] = feature.ID()
		root.Handle(prefix, handler)
	}
	return nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (module.Mount, []string, error) {
	mount, err := feature.Mount(deps)
	if err != nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	if mount.Handler == nil {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	prefixes := make([]string, 0, len(mount.Prefixes))
	for _, raw := range mount.Prefixes {
		prefix := normalizePrefix(raw)
		if prefix == "" {
			return module.Mount{}, nil, fmt.Errorf("mount module %q: blank prefix", feature.ID())
		}
		prefixes = append(prefixes, prefix)
	}
	if len(prefixes) == 0 {
		return module.Mount{}, nil, fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	return mount, prefixes, nil
}

// normalizePrefix trims and roots a prefix. A trailing slash is kept as
// given: "/users/" mounts a subtree, "/login" one path.
func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}

// requireAuth sends requests without a verified session to the login page.
// The session cookie was already cleared by the viewer middleware, so the
// gate lets the follow-up request through.
func requireAuth(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			return http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !authenticated(r) {
				location := routepath.Login + "?callbackUrl=" + gate.EncodeURIComponent(r.URL.Path)
				http.Redirect(w, r, location, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func wrapProtectedModule(authenticated func(*http.Request) bool) func(http.Handler) http.Handler {
	authWrap := requireAuth(authenticated)
	csrfWrap := requireCookieSessionSameOrigin()
	return func(next http.Handler) http.Handler {
		return authWrap(csrfWrap(next))
	}
}

func requireCookieSessionSameOrigin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutationMethod(r) || !hasSessionCookie(r) {
				next.ServeHTTP(w, r)
				return
			}
			if !requestmeta.HasSameOriginProof(r) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isMutationMethod(r *http.Request) bool {
	if r == nil {
		return false
	}
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func hasSessionCookie(r *http.Request) bool {
	_, ok := sessioncookie.Read(r)
	return ok
}
