package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessioncookie"
)

type stubModule struct {
	id       string
	prefixes []string
	handler  http.Handler
	err      error
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) {
	if m.err != nil {
		return module.Mount{}, m.err
	}
	return module.Mount{Prefixes: m.prefixes, Handler: m.handler}, nil
}

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestComposeMountsPublicAndProtectedModules(t *testing.T) {
	t.Parallel()

	handler, err := Composer{}.Compose(ComposeInput{
		Authenticated:    func(*http.Request) bool { return true },
		PublicModules:    []module.Module{stubModule{id: "auth", prefixes: []string{"/login"}, handler: okHandler("login")}},
		ProtectedModules: []module.Module{stubModule{id: "users", prefixes: []string{"/users", "users/"}, handler: okHandler("users")}},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	for path, want := range map[string]string{"/login": "login", "/users": "users", "/users/abc": "users"} {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK || rr.Body.String() != want {
			t.Fatalf("%s: status = %d body = %q", path, rr.Code, rr.Body.String())
		}
	}
}

func TestComposeRejectsInvalidModules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input ComposeInput
		want  string
	}{
		{
			name:  "nil public",
			input: ComposeInput{PublicModules: []module.Module{nil}},
			want:  "public module is nil",
		},
		{
			name: "duplicate prefix",
			input: ComposeInput{
				PublicModules:    []module.Module{stubModule{id: "a", prefixes: []string{"/x/"}, handler: okHandler("a")}},
				ProtectedModules: []module.Module{stubModule{id: "b", prefixes: []string{"/x/"}, handler: okHandler("b")}},
			},
			want: `duplicates prefix "/x/"`,
		},
		{
			name:  "missing handler",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", prefixes: []string{"/a"}}}},
			want:  "handler is required",
		},
		{
			name:  "missing prefix",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", handler: okHandler("a")}}},
			want:  "prefix is required",
		},
		{
			name:  "mount error",
			input: ComposeInput{PublicModules: []module.Module{stubModule{id: "a", err: errors.New("boom")}}},
			want:  "boom",
		},
		{
			name: "protected on public path",
			input: ComposeInput{
				IsPublic:         func(path string) bool { return strings.HasPrefix(path, "/login") },
				ProtectedModules: []module.Module{stubModule{id: "a", prefixes: []string{"/login"}, handler: okHandler("a")}},
			},
			want: "public prefix",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Composer{}.Compose(tc.input)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want %q", err, tc.want)
			}
		})
	}
}

func TestProtectedModuleRedirectsUnauthenticated(t *testing.T) {
	t.Parallel()

	handler, err := Composer{}.Compose(ComposeInput{
		ProtectedModules: []module.Module{stubModule{id: "users", prefixes: []string{"/users/"}, handler: okHandler("users")}},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/users/a%20b", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/login?callbackUrl=%2Fusers%2Fa%20b" {
		t.Fatalf("Location = %q", got)
	}
}

func TestSessionMutationsRequireSameOrigin(t *testing.T) {
	t.Parallel()

	handler, err := Composer{}.Compose(ComposeInput{
		Authenticated:    func(*http.Request) bool { return true },
		PublicModules:    []module.Module{stubModule{id: "auth", prefixes: []string{"/logout"}, handler: okHandler("bye")}},
		ProtectedModules: []module.Module{stubModule{id: "users", prefixes: []string{"/users"}, handler: okHandler("users")}},
	})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		cookie bool
		origin string
		want   int
	}{
		{name: "get without origin", method: http.MethodGet, path: "/users", cookie: true, want: http.StatusOK},
		{name: "post same origin", method: http.MethodPost, path: "/users", cookie: true, origin: "http://example.com", want: http.StatusOK},
		{name: "post cross origin", method: http.MethodPost, path: "/users", cookie: true, origin: "https://evil.test", want: http.StatusForbidden},
		{name: "post missing origin", method: http.MethodPost, path: "/users", cookie: true, want: http.StatusForbidden},
		{name: "public post cross origin", method: http.MethodPost, path: "/logout", cookie: true, origin: "https://evil.test", want: http.StatusForbidden},
		{name: "post without session cookie", method: http.MethodPost, path: "/logout", want: http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.cookie {
				req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "token"})
			}
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}
