package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"
)

func TestResolveTagPrecedence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      string
		cookie      string
		accept      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/", want: language.AmericanEnglish},
		{name: "query wins", target: "/?lang=pt-BR", cookie: "en-US", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "bare language query", target: "/?lang=pt", want: language.BrazilianPortuguese, wantPersist: true},
		{name: "cookie", target: "/", cookie: "pt-BR", accept: "en-US", want: language.BrazilianPortuguese},
		{name: "accept language", target: "/", accept: "pt-PT,pt;q=0.9", want: language.BrazilianPortuguese},
		{name: "unsupported query falls through", target: "/?lang=fr", accept: "pt-BR", want: language.BrazilianPortuguese},
		{name: "unsupported accept", target: "/", accept: "ja", want: language.AmericanEnglish},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
			}
			if tc.accept != "" {
				req.Header.Set("Accept-Language", tc.accept)
			}
			got, persist := ResolveTag(req)
			if got != tc.want || persist != tc.wantPersist {
				t.Fatalf("ResolveTag = %s, %v; want %s, %v", got, persist, tc.want, tc.wantPersist)
			}
		})
	}
}

func TestLocalizerPersistsQueryChoice(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	_, tag := Localizer(rr, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))
	if tag != language.BrazilianPortuguese {
		t.Fatalf("tag = %s", tag)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != LangCookieName || cookies[0].Value != "pt-BR" {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestPrinterUsesCatalog(t *testing.T) {
	t.Parallel()

	if got := Printer(language.BrazilianPortuguese).Sprintf("nav.users"); got != "Usuários" {
		t.Fatalf("pt-BR nav.users = %q", got)
	}
	if got := Printer(language.AmericanEnglish).Sprintf("nav.users"); got != "Users" {
		t.Fatalf("en-US nav.users = %q", got)
	}
}
