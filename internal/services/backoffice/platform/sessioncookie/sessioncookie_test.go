package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestReadRequiresNonEmptyValue(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := Read(req); ok {
		t.Fatal("expected missing cookie")
	}
	req.AddCookie(&http.Cookie{Name: Name, Value: "  "})
	if _, ok := Read(req); ok {
		t.Fatal("expected blank cookie to be absent")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: "abc"})
	if value, ok := Read(req); !ok || value != "abc" {
		t.Fatalf("Read = %q, %v", value, ok)
	}
	if _, ok := Read(nil); ok {
		t.Fatal("expected nil request to have no cookie")
	}
}

func TestWriteSetsHardenedCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodPost, "/login", nil), " token ", 2*time.Hour)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != "auth_token" || cookie.Value != "token" {
		t.Fatalf("cookie = %s=%s", cookie.Name, cookie.Value)
	}
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteLaxMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.MaxAge != 7200 {
		t.Fatalf("MaxAge = %d, want 7200", cookie.MaxAge)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Clear(rr, httptest.NewRequest(http.MethodPost, "/logout", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Fatalf("unexpected clear cookie: %+v", cookies)
	}
	Clear(nil, nil)
}
