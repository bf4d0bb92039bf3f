// Package themepref stores the palette mode preference in a cookie.
package themepref

import (
	"net/http"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/theme"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/requestmeta"
)

// CookieName holds the preferred mode.
const CookieName = "theme_mode"

const maxAge = 365 * 24 * time.Hour

// Read returns the preferred mode, defaulting to light.
func Read(r *http.Request) theme.Mode {
	if r == nil {
		return theme.ModeLight
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return theme.ModeLight
	}
	return theme.ParseMode(cookie.Value)
}

// Write persists mode.
func Write(w http.ResponseWriter, r *http.Request, mode theme.Mode) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(theme.ParseMode(string(mode))),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   requestmeta.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}
