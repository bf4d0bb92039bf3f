package publicauth

import (
	"net/http"
	"testing"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
)

func testDeps() module.Dependencies {
	return module.Dependencies{
		Now:           func() time.Time { return fixedNow },
		ResolveViewer: func(*http.Request) requestctx.Viewer { return requestctx.Viewer{} },
	}
}

func TestSafeCallback(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":                     "/",
		"/users":               "/users",
		"/users?page=2":        "/users?page=2",
		"/organizations/o1":    "/organizations/o1",
		"users":                "/",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		"https://evil.example": "/",
		"/login":               "/",
		"/login?x=1":           "/",
		"/logout":              "/",
		"/reset-password/x":    "/",
		"/loginish":            "/loginish",
		"/users\r\nSet-Cookie": "/",
	}
	for raw, want := range tests {
		if got := SafeCallback(raw); got != want {
			t.Fatalf("SafeCallback(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestResetLinkEscapesToken(t *testing.T) {
	t.Parallel()

	if got := ResetLink("a b&c"); got != "/reset-password?token=a+b%26c" {
		t.Fatalf("ResetLink = %q", got)
	}
}
