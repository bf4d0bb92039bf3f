// Package gate decides whether a navigation request reaches a page, is sent
// to the login screen, or is bounced back home.
//
// The gate only checks whether a session token is present. It never decodes,
// validates or refreshes the token; that belongs to the layers behind it.
package gate

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

// Outcome is the result of evaluating one request against the gate.
type Outcome int

const (
	// Allow passes the request through unchanged.
	Allow Outcome = iota
	// RedirectHome sends signed-in users away from public auth screens.
	RedirectHome
	// RedirectLogin sends anonymous users to the login screen.
	RedirectLogin
)

// String returns a stable label for logs and test failures.
func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectHome:
		return "redirect_home"
	case RedirectLogin:
		return "redirect_login"
	default:
		return "unknown"
	}
}

// Decision carries the outcome and, for redirects, the target location.
type Decision struct {
	Outcome  Outcome
	Location string
}

// Config holds the values the gate is built from.
type Config struct {
	// PublicPrefixes are matched with strings.HasPrefix against the request path.
	PublicPrefixes []string
	// Exclusions are regular expressions; matching paths bypass the gate.
	Exclusions []string
	// LoginPath is the redirect target for anonymous requests.
	LoginPath string
	// HomePath is the redirect target for signed-in requests to public paths.
	HomePath string
	// CallbackParam names the query parameter carrying the original path.
	CallbackParam string
	// CookieName is the session cookie checked for presence.
	CookieName string
}

// DefaultConfig returns the canonical public prefixes and exclusions.
func DefaultConfig() Config {
	return Config{
		PublicPrefixes: []string{"/login", "/register", "/forgot-password", "/reset-password"},
		Exclusions:     DefaultExclusions(),
		LoginPath:      "/login",
		HomePath:       "/",
		CallbackParam:  "callbackUrl",
		CookieName:     "auth_token",
	}
}

// DefaultExclusions returns the path patterns that never reach the gate:
// build assets, image optimization, the favicon, public images and the API.
func DefaultExclusions() []string {
	return []string{
		`^/static/`,
		`^/_next/static/`,
		`^/image(/|$)`,
		`^/_next/image`,
		`^/favicon\.ico$`,
		`^/images/`,
		`^/api(/|$)`,
	}
}

// Gate is an immutable route access policy.
type Gate struct {
	publicPrefixes []string
	exclusions     []*regexp.Regexp
	loginPath      string
	homePath       string
	callbackParam  string
	cookieName     string
}

// New validates cfg and compiles its exclusion patterns.
func New(cfg Config) (*Gate, error) {
	loginPath := strings.TrimSpace(cfg.LoginPath)
	if loginPath == "" {
		return nil, errors.New("login path is required")
	}
	homePath := strings.TrimSpace(cfg.HomePath)
	if homePath == "" {
		return nil, errors.New("home path is required")
	}
	cookieName := strings.TrimSpace(cfg.CookieName)
	if cookieName == "" {
		return nil, errors.New("cookie name is required")
	}
	callbackParam := strings.TrimSpace(cfg.CallbackParam)
	if callbackParam == "" {
		callbackParam = "callbackUrl"
	}

	prefixes := make([]string, 0, len(cfg.PublicPrefixes))
	for _, prefix := range cfg.PublicPrefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" {
			continue
		}
		prefixes = append(prefixes, prefix)
	}

	exclusions := make([]*regexp.Regexp, 0, len(cfg.Exclusions))
	for _, pattern := range cfg.Exclusions {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclusion %q: %w", pattern, err)
		}
		exclusions = append(exclusions, compiled)
	}

	return &Gate{
		publicPrefixes: prefixes,
		exclusions:     exclusions,
		loginPath:      loginPath,
		homePath:       homePath,
		callbackParam:  callbackParam,
		cookieName:     cookieName,
	}, nil
}

// IsPublic reports whether path starts with any public prefix.
func (g *Gate) IsPublic(path string) bool {
	for _, prefix := range g.publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// IsExcluded reports whether path bypasses the gate entirely.
func (g *Gate) IsExcluded(path string) bool {
	for _, pattern := range g.exclusions {
		if pattern.MatchString(path) {
			return true
		}
	}
	return false
}

// Decide applies the decision table to a path and token presence.
func (g *Gate) Decide(path string, tokenPresent bool) Decision {
	public := g.IsPublic(path)
	switch {
	case tokenPresent && public:
		return Decision{Outcome: RedirectHome, Location: g.homePath}
	case tokenPresent:
		return Decision{Outcome: Allow}
	case public:
		return Decision{Outcome: Allow}
	default:
		return Decision{Outcome: RedirectLogin, Location: g.loginLocation(path)}
	}
}

// TokenPresent reports whether the request carries a non-empty session cookie.
func (g *Gate) TokenPresent(r *http.Request) bool {
	if r == nil {
		return false
	}
	cookie, err := r.Cookie(g.cookieName)
	if err != nil || cookie == nil {
		return false
	}
	return cookie.Value != ""
}

// Middleware enforces the gate in front of next.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	if next == nil {
		next = http.NotFoundHandler()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if g.IsExcluded(path) {
			next.ServeHTTP(w, r)
			return
		}
		decision := g.Decide(path, g.TokenPresent(r))
		if decision.Outcome == Allow {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Location", decision.Location)
		w.WriteHeader(http.StatusTemporaryRedirect)
	})
}

func (g *Gate) loginLocation(path string) string {
	separator := "?"
	if strings.Contains(g.loginPath, "?") {
		separator = "&"
	}
	return g.loginPath + separator + g.callbackParam + "=" + EncodeURIComponent(path)
}
