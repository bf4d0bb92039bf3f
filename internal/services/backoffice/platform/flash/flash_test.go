package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteThenReadAndClear(t *testing.T) {
	t.Parallel()

	write := httptest.NewRecorder()
	Write(write, httptest.NewRequest(http.MethodPost, "/users", nil), Success("users.notice.created"))
	cookies := write.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(cookies[0])
	read := httptest.NewRecorder()
	notice, ok := ReadAndClear(read, req)
	if !ok || notice != (Notice{Kind: KindSuccess, Key: "users.notice.created"}) {
		t.Fatalf("notice = %+v, %v", notice, ok)
	}
	cleared := read.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Fatalf("expected clearing cookie, got %+v", cleared)
	}
}

func TestWriteDropsInvalidNotices(t *testing.T) {
	t.Parallel()

	for _, notice := range []Notice{{Kind: KindInfo}, {Kind: "loud", Key: "x"}} {
		rr := httptest.NewRecorder()
		Write(rr, nil, notice)
		if len(rr.Result().Cookies()) != 0 {
			t.Fatalf("expected no cookie for %+v", notice)
		}
	}
}

func TestReadAndClearRejectsTamperedCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req); ok {
		t.Fatal("expected tampered cookie to be ignored")
	}
	if _, ok := ReadAndClear(nil, httptest.NewRequest(http.MethodGet, "/", nil)); ok {
		t.Fatal("expected missing cookie")
	}
}
