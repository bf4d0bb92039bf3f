package templates

import (
	"net/url"
	"strings"

	"github.com/louisbranch/backoffice/internal/platform/icons"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

const htmxScript = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// htmxConfig swaps 4xx and 5xx responses so validation and error pages
// render in place.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[2345]..","swap":true}]}`

// NavItem identifies the active sidebar entry.
type NavItem string

const (
	NavNone          NavItem = ""
	NavDashboard     NavItem = "dashboard"
	NavUsers         NavItem = "users"
	NavOrganizations NavItem = "organizations"
)

// ViewerView is the signed-in identity shown in the top bar.
type ViewerView struct {
	Name     string
	Email    string
	Role     string
	SignedIn bool
}

// FlashView is a one-time notice rendered above page content.
type FlashView struct {
	Kind    string
	Message string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// LayoutView carries the document chrome.
type LayoutView struct {
	Title       string
	Lang        string
	ThemeMode   string
	Direction   string
	Active      NavItem
	Viewer      ViewerView
	Flash       *FlashView
	CurrentPath string
	Languages   []LanguageOption
}

// DocumentTitle appends the product name to title.
func DocumentTitle(title string, loc Localizer) string {
	app := T(loc, "core.app_name")
	title = strings.TrimSpace(title)
	if title == "" {
		return app
	}
	return title + " | " + app
}

func themeHref(view LayoutView) string {
	return routepath.WithQuery(routepath.ThemeCSS, url.Values{
		"mode": {view.ThemeMode},
		"dir":  {view.Direction},
	})
}

func languageHref(currentPath, tag string) string {
	if currentPath == "" {
		currentPath = routepath.Root
	}
	return routepath.WithQuery(currentPath, url.Values{"lang": {tag}})
}

// themeToggleIcon and themeToggleLabel offer the theme opposite to mode.
func themeToggleIcon(mode string) icons.ID {
	if mode == "dark" {
		return icons.ThemeLight
	}
	return icons.ThemeDark
}

func themeToggleLabel(mode string, loc Localizer) string {
	if mode == "dark" {
		return T(loc, "core.theme.light")
	}
	return T(loc, "core.theme.dark")
}

func iconHref(id icons.ID) string {
	return "#" + icons.LucideSymbolID(icons.LucideNameOrDefault(id))
}

func (f FlashView) class() string {
	kind := f.Kind
	if kind == "" {
		kind = "info"
	}
	return "alert alert-" + kind
}
