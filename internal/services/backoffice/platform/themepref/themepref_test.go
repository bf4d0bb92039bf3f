package themepref

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/backoffice/internal/platform/theme"
)

func TestReadDefaultsToLight(t *testing.T) {
	t.Parallel()

	if got := Read(nil); got != theme.ModeLight {
		t.Fatalf("Read(nil) = %q", got)
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "neon"})
	if got := Read(req); got != theme.ModeLight {
		t.Fatalf("Read(neon) = %q", got)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/preferences/theme", nil), theme.ModeDark)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].Value != "dark" || cookies[0].Path != "/" || cookies[0].MaxAge <= 0 {
		t.Fatalf("cookie = %+v", cookies[0])
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	if got := Read(req); got != theme.ModeDark {
		t.Fatalf("Read = %q, want dark", got)
	}
}
