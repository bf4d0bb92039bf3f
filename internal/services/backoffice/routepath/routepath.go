// Package routepath stores canonical HTTP paths for backoffice modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root           = "/"
	Login          = "/login"
	Register       = "/register"
	ForgotPassword = "/forgot-password"
	ResetPassword  = "/reset-password"
	Logout         = "/logout"
)

const (
	StaticPrefix = "/static/"
	ThemeCSS     = "/static/theme.css"
	ImagesPrefix = "/images/"
	Favicon      = "/favicon.ico"
	APIPrefix    = "/api/"
	APIHealth    = "/api/health"
	APITheme     = "/api/theme"
)

const (
	Users                     = "/users"
	UsersPrefix               = "/users/"
	UsersTable                = "/users/table"
	UsersNew                  = "/users/new"
	UsersExport               = "/users/export"
	UserPattern               = UsersPrefix + "{userID}"
	UserEditPattern           = UsersPrefix + "{userID}/edit"
	UserDeletePattern         = UsersPrefix + "{userID}/delete"
	UserExportPattern         = UsersPrefix + "{userID}/export"
	UserRestPattern           = UsersPrefix + "{userID}/{rest...}"
	Organizations             = "/organizations"
	OrganizationsPrefix       = "/organizations/"
	OrganizationsTable        = "/organizations/table"
	OrganizationsNew          = "/organizations/new"
	OrganizationsExport       = "/organizations/export"
	OrganizationPattern       = OrganizationsPrefix + "{orgID}"
	OrganizationEditPattern   = OrganizationsPrefix + "{orgID}/edit"
	OrganizationDeletePattern = OrganizationsPrefix + "{orgID}/delete"
	OrganizationExportPattern = OrganizationsPrefix + "{orgID}/export"
	OrganizationRestPattern   = OrganizationsPrefix + "{orgID}/{rest...}"
	PreferencesPrefix         = "/preferences/"
	PreferencesTheme          = "/preferences/theme"
	PreferencesLanguage       = "/preferences/language"
	DashboardRestPattern      = "/{rest...}"
	DashboardIndexPattern     = "/{$}"
)

// User returns the detail path for a user.
func User(userID string) string {
	return UsersPrefix + escapeSegment(userID)
}

// UserEdit returns the edit form path for a user.
func UserEdit(userID string) string {
	return User(userID) + "/edit"
}

// UserDelete returns the delete action path for a user.
func UserDelete(userID string) string {
	return User(userID) + "/delete"
}

// UserExport returns the single-record CSV path for a user.
func UserExport(userID string) string {
	return User(userID) + "/export"
}

// Organization returns the detail path for an organization.
func Organization(orgID string) string {
	return OrganizationsPrefix + escapeSegment(orgID)
}

// OrganizationEdit returns the edit form path for an organization.
func OrganizationEdit(orgID string) string {
	return Organization(orgID) + "/edit"
}

func OrganizationDelete(orgID string) string {
	return Organization(orgID) + "/delete"
}

func OrganizationExport(orgID string) string {
	return Organization(orgID) + "/export"
}

// WithQuery appends non-empty query values to path.
func WithQuery(path string, values url.Values) string {
	for key, vals := range values {
		kept := vals[:0]
		for _, v := range vals {
			if strings.TrimSpace(v) != "" {
				kept = append(kept, v)
			}
		}
		if len(kept) == 0 {
			values.Del(key)
			continue
		}
		values[key] = kept
	}
	encoded := values.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
