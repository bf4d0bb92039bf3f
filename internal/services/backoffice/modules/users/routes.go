package users

import (
	"net/http"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Users, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.Users, h.handleCreate)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersPrefix+"{$}", h.redirectList)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersTable, h.handleTable)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersNew, h.handleNew)
	mux.HandleFunc(http.MethodGet+" "+routepath.UsersExport, h.handleExport)

	mux.HandleFunc(http.MethodGet+" "+routepath.UserPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.UserEditPattern, h.handleEdit)
	mux.HandleFunc(http.MethodPost+" "+routepath.UserEditPattern, h.handleUpdate)
	mux.HandleFunc(http.MethodGet+" "+routepath.UserDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.UserDeletePattern, h.handleDelete)
	mux.HandleFunc(http.MethodGet+" "+routepath.UserExportPattern, h.handleExportOne)

	mux.HandleFunc(http.MethodGet+" "+routepath.UserRestPattern, h.handleNotFound)
}
