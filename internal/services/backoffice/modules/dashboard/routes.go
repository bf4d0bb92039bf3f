package dashboard

import (
	"net/http"

	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.DashboardIndexPattern, h.handleIndex)
	mux.HandleFunc(routepath.DashboardRestPattern, h.handleNotFound)
}
