package organizations

import (
	"net/http"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Organizations, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.Organizations, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationsPrefix+"{$}", h.redirectList)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationsTable, h.handleTable)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationsNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationsExport, h.handleExport)

	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.OrganizationEditPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.OrganizationDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationExportPattern, h.handleExportOne)

	mux.HandleFunc(http.MethodGet+" "+routepath.OrganizationRestPattern, h.handleNotFound)
}
