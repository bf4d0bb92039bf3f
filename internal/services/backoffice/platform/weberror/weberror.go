// Package weberror maps typed errors to user-safe page responses.
package weberror

import (
	"net/http"
	"strings"

	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/templates"
)

// Status returns the response status for err. Statuses below 400 are raised
// to 500 since an error is being rendered.
func Status(err error) int {
	status := apperrors.HTTPStatus(err)
	if status < http.StatusBadRequest {
		return http.StatusInternalServerError
	}
	return status
}

// PublicMessage resolves a user-safe localized error message. Untyped errors
// never leak their text.
func PublicMessage(loc templates.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" {
				return localized
			}
		}
	}
	if text := strings.TrimSpace(http.StatusText(Status(err))); text != "" {
		return text
	}
	return http.StatusText(http.StatusInternalServerError)
}
