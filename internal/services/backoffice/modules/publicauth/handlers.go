package publicauth

import (
	"errors"
	"net/http"
	"strings"

	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/flash"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/modulehandler"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessioncookie"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/sessiontoken"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/weberror"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"github.com/louisbranch/backoffice/internal/services/backoffice/templates"
)

const callbackParam = "callbackUrl"

type handlers struct {
	modulehandler.Base
	service service
	issuer  TokenIssuer
}

func newHandlers(s service, issuer TokenIssuer, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s, issuer: issuer}
}

func (h handlers) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, templates.LoginView{CallbackURL: SafeCallback(r.URL.Query().Get(callbackParam))})
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	callback := SafeCallback(r.PostFormValue(callbackParam))
	user, err := h.service.authenticate(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		if isFormError(err) {
			loc, _ := h.PageLocalizer(w, r)
			h.renderLogin(w, r, weberror.Status(err), templates.LoginView{Email: email, CallbackURL: callback, Error: weberror.PublicMessage(loc, err)})
			return
		}
		h.WriteError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	h.Redirect(w, r, callback, flash.Notice{})
}

func (h handlers) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, r, http.StatusOK, templates.RegisterView{})
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	input := RegisterInput{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Confirm:  r.PostFormValue("confirm"),
	}
	user, err := h.service.register(r.Context(), input)
	if err != nil {
		if isFormError(err) {
			loc, _ := h.PageLocalizer(w, r)
			h.renderRegister(w, r, weberror.Status(err), templates.RegisterView{
				Name:  strings.TrimSpace(input.Name),
				Email: strings.TrimSpace(input.Email),
				Error: weberror.PublicMessage(loc, err),
			})
			return
		}
		h.WriteError(w, r, err)
		return
	}
	if !h.startSession(w, r, user) {
		return
	}
	h.Redirect(w, r, routepath.Root, flash.Success("auth.flash.welcome"))
}

func (h handlers) handleForgotForm(w http.ResponseWriter, r *http.Request) {
	h.renderForgot(w, r, templates.ForgotPasswordView{})
}

func (h handlers) handleForgot(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	h.service.requestReset(r.Context(), r.PostFormValue("email"))
	h.renderForgot(w, r, templates.ForgotPasswordView{Sent: true})
}

func (h handlers) handleResetForm(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	usable, err := h.service.resetUsable(r.Context(), token)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if !usable {
		h.renderReset(w, r, http.StatusGone, templates.ResetPasswordView{Invalid: true})
		return
	}
	h.renderReset(w, r, http.StatusOK, templates.ResetPasswordView{Token: token})
}

func (h handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	token := strings.TrimSpace(r.PostFormValue("token"))
	err := h.service.resetPassword(r.Context(), token, r.PostFormValue("password"), r.PostFormValue("confirm"))
	switch {
	case err == nil:
		h.Redirect(w, r, routepath.Login, flash.Success("auth.flash.password_reset"))
	case errors.Is(err, errResetInvalid):
		h.renderReset(w, r, http.StatusGone, templates.ResetPasswordView{Invalid: true})
	case isFormError(err):
		loc, _ := h.PageLocalizer(w, r)
		h.renderReset(w, r, weberror.Status(err), templates.ResetPasswordView{Token: token, Error: weberror.PublicMessage(loc, err)})
	default:
		h.WriteError(w, r, err)
	}
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessioncookie.Clear(w, r)
	h.Redirect(w, r, routepath.Login, flash.Notice{Kind: flash.KindInfo, Key: "auth.flash.signed_out"})
}

// startSession signs a token for user and sets the session cookie.
func (h handlers) startSession(w http.ResponseWriter, r *http.Request, user storage.User) bool {
	token, _, err := h.issuer.Issue(sessiontoken.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
	})
	if err != nil {
		h.WriteError(w, r, err)
		return false
	}
	sessioncookie.Write(w, r, token, h.issuer.TTL())
	return true
}

func (h handlers) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.form_parse", "failed to parse form"))
		return false
	}
	return true
}

func (h handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, view templates.LoginView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WriteAuthPage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "auth.login.title"),
		Status:   status,
		Fragment: templates.LoginPage(view, loc),
	})
}

func (h handlers) renderRegister(w http.ResponseWriter, r *http.Request, status int, view templates.RegisterView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WriteAuthPage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "auth.register.title"),
		Status:   status,
		Fragment: templates.RegisterPage(view, loc),
	})
}

func (h handlers) renderForgot(w http.ResponseWriter, r *http.Request, view templates.ForgotPasswordView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WriteAuthPage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "auth.forgot.title"),
		Fragment: templates.ForgotPasswordPage(view, loc),
	})
}

func (h handlers) renderReset(w http.ResponseWriter, r *http.Request, status int, view templates.ResetPasswordView) {
	loc, _ := h.PageLocalizer(w, r)
	h.WriteAuthPage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "auth.reset.title"),
		Status:   status,
		Fragment: templates.ResetPasswordPage(view, loc),
	})
}

// isFormError reports errors the form re-renders instead of the error page.
func isFormError(err error) bool {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindConflict, apperrors.KindUnauthorized, apperrors.KindForbidden:
		return true
	default:
		return false
	}
}
