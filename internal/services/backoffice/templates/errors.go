package templates

import "net/http"

// ErrorView describes an error page.
type ErrorView struct {
	Status  int
	Message string
}

// ErrorTitle returns the localized heading for status.
func ErrorTitle(status int, loc Localizer) string {
	switch status {
	case http.StatusNotFound:
		return T(loc, "error.page.not_found_title")
	case http.StatusForbidden, http.StatusUnauthorized:
		return T(loc, "error.page.forbidden_title")
	default:
		if status >= http.StatusInternalServerError {
			return T(loc, "error.page.server_title")
		}
		return T(loc, "error.page.request_title")
	}
}
