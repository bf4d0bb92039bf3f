// Package preferences stores per-browser display choices: palette mode and
// interface language.
package preferences

import (
	"net/http"
	"strings"

	"github.com/louisbranch/backoffice/internal/platform/theme"
	"github.com/louisbranch/backoffice/internal/services/backoffice/i18n"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/modulehandler"
	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/themepref"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

// Module mounts the preference endpoints.
type Module struct{}

// New returns the preferences module.
func New() Module { return Module{} }

// ID returns the module identifier.
func (Module) ID() string { return "preferences" }

// Mount registers the preference routes.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	h := handlers{Base: modulehandler.NewBase(deps)}
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodPost+" "+routepath.PreferencesTheme, h.handleTheme)
	mux.HandleFunc(http.MethodPost+" "+routepath.PreferencesLanguage, h.handleLanguage)
	mux.HandleFunc(http.MethodGet+" "+routepath.PreferencesTheme, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodGet+" "+routepath.PreferencesLanguage, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(routepath.PreferencesPrefix, h.handleNotFound)
	return module.Mount{Prefixes: []string{routepath.PreferencesPrefix}, Handler: mux}, nil
}

type handlers struct {
	modulehandler.Base
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

// handleTheme stores mode=light|dark, or flips the current mode for
// mode=toggle.
func (h handlers) handleTheme(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.form_parse", "failed to parse theme form"))
		return
	}
	raw := strings.ToLower(strings.TrimSpace(r.PostFormValue("mode")))
	var mode theme.Mode
	switch raw {
	case "toggle", "":
		mode = themepref.Read(r).Toggle()
	case string(theme.ModeLight), string(theme.ModeDark):
		mode = theme.Mode(raw)
	default:
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "preferences.error.theme_invalid", "unknown theme mode"))
		return
	}
	themepref.Write(w, r, mode)
	httpx.WriteRedirect(w, r, returnPath(r))
}

func (h handlers) handleLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.form_parse", "failed to parse language form"))
		return
	}
	tag, ok := i18n.Parse(r.PostFormValue(i18n.LangParam))
	if !ok {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "preferences.error.language_invalid", "unsupported language"))
		return
	}
	i18n.SetLanguageCookie(w, tag)
	httpx.WriteRedirect(w, r, returnPath(r))
}

// returnPath is the local page to go back to after saving.
func returnPath(r *http.Request) string {
	raw := strings.TrimSpace(r.PostFormValue("return"))
	if !httpx.LocalPath(raw) {
		return routepath.Root
	}
	return raw
}
