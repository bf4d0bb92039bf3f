// Package htmx renders pages that double as HTMX partials.
package htmx

import (
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
)

// Page describes one response. Fragment is the swappable content; Full wraps
// it in the layout for direct navigation. A nil Full renders Fragment alone.
type Page struct {
	Title    string
	Status   int
	Fragment templ.Component
	Full     templ.Component
}

// TitleTag formats an escaped title element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// RenderPage writes page. HTMX requests receive the fragment preceded by a
// title element so hx-boost keeps the document title in sync.
func RenderPage(w http.ResponseWriter, r *http.Request, page Page) {
	if w == nil {
		return
	}
	status := page.Status
	if status <= 0 {
		status = http.StatusOK
	}

	component := page.Full
	if httpx.IsHTMXRequest(r) || component == nil {
		component = page.Fragment
		if httpx.IsHTMXRequest(r) {
			if title := TitleTag(page.Title); title != "" && component != nil {
				component = templ.Join(templ.Raw(title), component)
			}
		}
	}
	if component == nil {
		w.WriteHeader(status)
		return
	}
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}
