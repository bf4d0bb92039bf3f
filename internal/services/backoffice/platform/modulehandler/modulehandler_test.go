package modulehandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/platform/theme"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/flash"
	"github.com/louisbranch/backoffice/internal/services/backoffice/templates"
)

var fixedNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestWritePageRendersFullLayout(t *testing.T) {
	t.Parallel()

	base := NewTestBase(fixedNow)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req = req.WithContext(requestctx.WithViewer(req.Context(), requestctx.Viewer{UserID: "u1", Name: "Ada", Role: "admin"}))
	rr := httptest.NewRecorder()

	base.WritePage(rr, req, Page{Title: "Users", Nav: templates.NavUsers, Fragment: templ.Raw(`<p id="frag">x</p>`)})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, marker := range []string{"<!doctype html>", `id="frag"`, "Ada", `action="/logout"`} {
		if !strings.Contains(body, marker) {
			t.Fatalf("body missing %q", marker)
		}
	}
}

func TestWritePageHTMXReturnsFragmentWithTitle(t *testing.T) {
	t.Parallel()

	base := NewTestBase(fixedNow)
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()

	base.WritePage(rr, req, Page{Title: "Users", Status: http.StatusCreated, Fragment: templ.Raw(`<p id="frag">x</p>`)})

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "<html") {
		t.Fatal("expected fragment without document")
	}
	if !strings.HasPrefix(body, "<title>") || !strings.Contains(body, `id="frag"`) {
		t.Fatalf("body = %q", body)
	}
}

func TestWritePageConsumesFlash(t *testing.T) {
	t.Parallel()

	set := httptest.NewRecorder()
	flash.Write(set, httptest.NewRequest(http.MethodPost, "/users", nil), flash.Success("users.flash.created"))
	cookies := set.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("flash cookies = %d", len(cookies))
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.AddCookie(cookies[0])
	rr := httptest.NewRecorder()
	NewTestBase(fixedNow).WritePage(rr, req, Page{Title: "Users"})

	if !strings.Contains(rr.Body.String(), "alert-success") {
		t.Fatal("expected flash notice in layout")
	}
	cleared := false
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == flash.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("expected flash cookie to be cleared")
	}
}

func TestLayoutViewUsesThemeResolverAndLanguage(t *testing.T) {
	t.Parallel()

	base := NewBase(module.Dependencies{
		ResolveThemeMode: func(*http.Request) theme.Mode { return theme.ModeDark },
	})
	req := httptest.NewRequest(http.MethodGet, "/organizations?lang=pt-BR", nil)
	rr := httptest.NewRecorder()
	loc, tag := base.PageLocalizer(rr, req)
	view := base.LayoutView(rr, req, Page{Title: "Orgs", Nav: templates.NavOrganizations}, loc, tag)

	if view.ThemeMode != "dark" || view.Lang != "pt-BR" || view.CurrentPath != "/organizations" {
		t.Fatalf("view = %+v", view)
	}
	if len(view.Languages) != 2 || !view.Languages[1].Active {
		t.Fatalf("languages = %+v", view.Languages)
	}
	if view.Viewer.SignedIn {
		t.Fatal("expected anonymous viewer")
	}
}

func TestWriteErrorMapsStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "untyped", err: errors.New("db down"), want: http.StatusInternalServerError},
		{name: "not found", err: apperrors.E(apperrors.KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "conflict", err: apperrors.E(apperrors.KindConflict, "taken"), want: http.StatusConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rr := httptest.NewRecorder()
			NewTestBase(fixedNow).WriteError(rr, httptest.NewRequest(http.MethodGet, "/users/x", nil), tc.err)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
			if strings.Contains(rr.Body.String(), "db down") {
				t.Fatal("internal error text leaked")
			}
		})
	}
}

func TestWriteNotFound(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase(fixedNow).WriteNotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `data-status="404"`) {
		t.Fatal("expected error state")
	}
}

func TestRedirectWritesFlashAndSeeOther(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewTestBase(fixedNow).Redirect(rr, httptest.NewRequest(http.MethodPost, "/users", nil), "/users", flash.Success("users.flash.deleted"))
	if rr.Code != http.StatusSeeOther || rr.Header().Get("Location") != "/users" {
		t.Fatalf("status = %d location = %q", rr.Code, rr.Header().Get("Location"))
	}
	if len(rr.Result().Cookies()) != 1 {
		t.Fatal("expected flash cookie")
	}
}

func TestNowUsesInjectedClock(t *testing.T) {
	t.Parallel()

	if got := NewTestBase(fixedNow).Now(); !got.Equal(fixedNow) {
		t.Fatalf("Now = %v", got)
	}
}
