// Package i18n resolves the request language and builds message printers
// backed by the embedded locale catalogs.
package i18n

import (
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the language preference.
	LangCookieName = "bo_lang"
)

var supportedTags = []language.Tag{
	language.AmericanEnglish,
	language.BrazilianPortuguese,
}

var tagMatcher = language.NewMatcher(supportedTags)

var registerOnce sync.Once

// Register loads the embedded catalogs into the message catalog once.
// Later calls are no-ops.
func Register() {
	registerOnce.Do(func() {
		bundle, err := catalog.LoadEmbedded()
		if err != nil {
			log.Printf("backoffice i18n: load catalogs: %v", err)
			return
		}
		if err := bundle.Register(); err != nil {
			log.Printf("backoffice i18n: register catalogs: %v", err)
		}
	})
}

// Supported returns the supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the fallback language tag.
func Default() language.Tag {
	return language.AmericanEnglish
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	Register()
	return message.NewPrinter(tag)
}

// ResolveTag picks the request language from the lang query parameter, the
// language cookie, then Accept-Language. The bool reports whether the query
// parameter selected it and should be persisted.
func ResolveTag(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}
	if r.URL != nil {
		if tag, ok := Parse(r.URL.Query().Get(LangParam)); ok {
			return tag, true
		}
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := Parse(cookie.Value); ok {
			return tag, false
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			_, index, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				return supportedTags[index], false
			}
		}
	}
	return Default(), false
}

// Parse maps raw to a supported tag. Bare languages match their regional
// variant, so "pt" selects pt-BR.
func Parse(raw string) (language.Tag, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return language.Tag{}, false
	}
	parsed, err := language.Parse(raw)
	if err != nil {
		return language.Tag{}, false
	}
	for _, tag := range supportedTags {
		if parsed == tag {
			return tag, true
		}
	}
	base, _ := parsed.Base()
	for _, tag := range supportedTags {
		if tagBase, _ := tag.Base(); tagBase == base {
			return tag, true
		}
	}
	return language.Tag{}, false
}

// SetLanguageCookie persists tag on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// Localizer resolves the request language, persisting an explicit choice,
// and returns the printer with the tag.
func Localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, language.Tag) {
	tag, persist := ResolveTag(r)
	if persist {
		SetLanguageCookie(w, tag)
	}
	return Printer(tag), tag
}
