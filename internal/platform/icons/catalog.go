package icons

import "strings"

// ID is a stable icon identifier.
type ID string

const (
	Generic       ID = "generic"
	Dashboard     ID = "dashboard"
	Users         ID = "users"
	Organizations ID = "organizations"
	Download      ID = "download"
	LogOut        ID = "log-out"
	ThemeLight    ID = "theme-light"
	ThemeDark     ID = "theme-dark"
	Language      ID = "language"
)

// Definition describes a core icon entry.
type Definition struct {
	ID          ID
	Name        string
	Description string
}

var catalog = []Definition{
	{ID: Generic, Name: "Generic", Description: "Default icon for uncategorized entries."},
	{ID: Dashboard, Name: "Dashboard", Description: "Summary widgets and the home screen."},
	{ID: Users, Name: "Users", Description: "User accounts and their roles."},
	{ID: Organizations, Name: "Organizations", Description: "Customer organizations and plans."},
	{ID: Download, Name: "Download", Description: "CSV exports and other file downloads."},
	{ID: LogOut, Name: "Log out", Description: "End the current session."},
	{ID: ThemeLight, Name: "Light theme", Description: "Switch to the light palette."},
	{ID: ThemeDark, Name: "Dark theme", Description: "Switch to the dark palette."},
	{ID: Language, Name: "Language", Description: "Interface language selection."},
}

// Catalog returns a copy of the icon definitions in display order.
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, def := range catalog {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// Parse maps a raw identifier to an ID, case-insensitively.
func Parse(raw string) (ID, bool) {
	id := ID(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := Lookup(id); !ok {
		return "", false
	}
	return id, true
}
