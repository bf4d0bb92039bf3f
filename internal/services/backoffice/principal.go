package backoffice

import (
	"log"
	"net/http"

	"github.com/louisbranch/backoffice/internal/platform/requestctx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessioncookie"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
)

// TokenParser verifies a session token.
type TokenParser interface {
	Parse(raw string) (sessiontoken.Identity, error)
}

// withViewer stores the verified session identity in the request context.
// A cookie that fails verification is cleared so the gate stops treating the
// browser as signed in on its next request.
func withViewer(tokens TokenParser) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := sessioncookie.Read(r)
			if !ok || tokens == nil {
				next.ServeHTTP(w, r)
				return
			}
			identity, err := tokens.Parse(raw)
			if err != nil {
				log.Printf("backoffice session rejected path=%s request_id=%s err=%v", r.URL.Path, httpx.RequestIDFrom(r), err)
				sessioncookie.Clear(w, r)
				next.ServeHTTP(w, r)
				return
			}
			viewer := requestctx.Viewer{
				UserID: identity.UserID,
				Name:   identity.Name,
				Email:  identity.Email,
				Role:   identity.Role,
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithViewer(r.Context(), viewer)))
		})
	}
}

// signedIn reports whether withViewer verified a session for r.
func signedIn(r *http.Request) bool {
	return requestctx.ViewerFromContext(httpx.RequestContext(r)).SignedIn()
}
