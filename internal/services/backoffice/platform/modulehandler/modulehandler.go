// Package modulehandler provides the shared base embedded by backoffice
// module handlers: viewer and language resolution, page rendering inside
// the layout, and error pages.
package modulehandler

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/platform/theme"
	"github.com/louisbranch/backoffice/internal/services/backoffice/i18n"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/flash"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/htmx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/themepref"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/weberror"
	"github.com/louisbranch/backoffice/internal/services/backoffice/templates"
	"golang.org/x/text/language"
)

// Base carries the request resolvers shared by module handlers.
type Base struct {
	deps module.Dependencies
}

// NewBase builds a handler base from module dependencies. Missing resolvers
// fall back to the request context viewer and the theme cookie.
func NewBase(deps module.Dependencies) Base {
	if deps.ResolveViewer == nil {
		deps.ResolveViewer = func(r *http.Request) requestctx.Viewer {
			return requestctx.ViewerFromContext(httpx.RequestContext(r))
		}
	}
	if deps.ResolveThemeMode == nil {
		deps.ResolveThemeMode = themepref.Read
	}
	return Base{deps: deps}
}

// NewTestBase builds a base with default resolvers and a fixed clock.
func NewTestBase(now time.Time) Base {
	return NewBase(module.Dependencies{Now: func() time.Time { return now }})
}

// Page is a module page rendered inside the application shell.
type Page struct {
	Title    string
	Status   int
	Nav      templates.NavItem
	Fragment templ.Component
}

// Viewer returns the identity rendering r.
func (b Base) Viewer(r *http.Request) requestctx.Viewer {
	if b.deps.ResolveViewer == nil {
		return requestctx.Viewer{}
	}
	return b.deps.ResolveViewer(r)
}

// Now returns the current time from the injected clock.
func (b Base) Now() time.Time {
	return b.deps.Clock()()
}

// PageLocalizer resolves the printer and tag for r, persisting an explicit
// ?lang= choice.
func (b Base) PageLocalizer(w http.ResponseWriter, r *http.Request) (templates.Localizer, language.Tag) {
	return i18n.Localizer(w, r)
}

// WritePage renders a module page. HTMX requests receive only the fragment.
func (b Base) WritePage(w http.ResponseWriter, r *http.Request, page Page) {
	loc, tag := b.PageLocalizer(w, r)
	b.writeShell(w, r, page, loc, tag, templates.Layout)
}

// WriteAuthPage renders a public sign-in screen in the auth card layout.
func (b Base) WriteAuthPage(w http.ResponseWriter, r *http.Request, page Page) {
	loc, tag := b.PageLocalizer(w, r)
	b.writeShell(w, r, page, loc, tag, templates.AuthLayout)
}

type shell func(templates.LayoutView, templates.Localizer, templ.Component) templ.Component

func (b Base) writeShell(w http.ResponseWriter, r *http.Request, page Page, loc templates.Localizer, tag language.Tag, wrap shell) {
	var full templ.Component
	if !httpx.IsHTMXRequest(r) {
		full = wrap(b.LayoutView(w, r, page, loc, tag), loc, page.Fragment)
	}
	htmx.RenderPage(w, r, htmx.Page{
		Title:    templates.DocumentTitle(page.Title, loc),
		Status:   page.Status,
		Fragment: page.Fragment,
		Full:     full,
	})
}

// LayoutView assembles the document chrome for r. It consumes any pending
// flash notice.
func (b Base) LayoutView(w http.ResponseWriter, r *http.Request, page Page, loc templates.Localizer, tag language.Tag) templates.LayoutView {
	viewer := b.Viewer(r)
	view := templates.LayoutView{
		Title:     page.Title,
		Lang:      tag.String(),
		ThemeMode: string(b.deps.ResolveThemeMode(r)),
		Direction: string(theme.LTR),
		Active:    page.Nav,
		Viewer: templates.ViewerView{
			Name:     viewer.Name,
			Email:    viewer.Email,
			SignedIn: viewer.SignedIn(),
		},
		CurrentPath: currentPath(r),
	}
	if viewer.Role != "" {
		view.Viewer.Role = templates.T(loc, "users.role."+viewer.Role)
	}
	for _, supported := range i18n.Supported() {
		view.Languages = append(view.Languages, templates.LanguageOption{
			Tag:    supported.String(),
			Label:  templates.T(loc, "core.language."+strings.ToLower(strings.ReplaceAll(supported.String(), "-", "_"))),
			Active: supported == tag,
		})
	}
	if notice, ok := flash.ReadAndClear(w, r); ok {
		view.Flash = &templates.FlashView{Kind: string(notice.Kind), Message: templates.T(loc, notice.Key)}
	}
	return view
}

// WriteError renders err as an error page with its mapped status.
func (b Base) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := weberror.Status(err)
	if status >= http.StatusInternalServerError {
		log.Printf("backoffice request failed method=%s path=%s request_id=%s err=%v", method(r), currentPath(r), httpx.RequestIDFrom(r), err)
	}
	loc, tag := b.PageLocalizer(w, r)
	b.writeErrorPage(w, r, status, weberror.PublicMessage(loc, err), loc, tag)
}

// WriteNotFound renders the 404 page.
func (b Base) WriteNotFound(w http.ResponseWriter, r *http.Request) {
	loc, tag := b.PageLocalizer(w, r)
	b.writeErrorPage(w, r, http.StatusNotFound, templates.T(loc, "error.not_found"), loc, tag)
}

func (b Base) writeErrorPage(w http.ResponseWriter, r *http.Request, status int, message string, loc templates.Localizer, tag language.Tag) {
	b.writeShell(w, r, Page{
		Title:    templates.ErrorTitle(status, loc),
		Status:   status,
		Fragment: templates.ErrorPage(templates.ErrorView{Status: status, Message: message}, loc),
	}, loc, tag, templates.Layout)
}

// Redirect sends the browser to location after a form post, leaving notice
// for the next page.
func (b Base) Redirect(w http.ResponseWriter, r *http.Request, location string, notice flash.Notice) {
	if notice.Key != "" {
		flash.Write(w, r, notice)
	}
	httpx.WriteRedirect(w, r, location)
}

func currentPath(r *http.Request) string {
	if r == nil || r.URL == nil {
		return ""
	}
	return r.URL.Path
}

func method(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.Method
}
