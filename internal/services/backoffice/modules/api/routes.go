package api

import (
	"net/http"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

func routes(h handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(http.MethodGet+" "+routepath.APIHealth, h.handleHealth)
	mux.HandleFunc(http.MethodGet+" "+routepath.APITheme, h.handleTheme)
	mux.HandleFunc(routepath.APIHealth, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.APITheme, httpx.MethodNotAllowed(http.MethodGet))
	mux.HandleFunc(routepath.APIPrefix, func(w http.ResponseWriter, _ *http.Request) {
		_ = httpx.WriteJSONError(w, http.StatusNotFound, "not found")
	})
	return mux
}
