package publicauth

import (
	"net/http"

	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/httpx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.Login, h.handleLoginForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Login, h.handleLogin)
	mux.HandleFunc(http.MethodGet+" "+routepath.Register, h.handleRegisterForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.Register, h.handleRegister)
	mux.HandleFunc(http.MethodGet+" "+routepath.ForgotPassword, h.handleForgotForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.ForgotPassword, h.handleForgot)
	mux.HandleFunc(http.MethodGet+" "+routepath.ResetPassword, h.handleResetForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.ResetPassword, h.handleReset)
	mux.HandleFunc(http.MethodGet+" "+routepath.Logout, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.Logout, h.handleLogout)
}
