package templates

// UsersTableID is the swap target for the users table partial.
const UsersTableID = "users-table"

// UserRow is one user as displayed in tables and detail pages.
type UserRow struct {
	ID             string
	Name           string
	Email          string
	Role           string
	Status         Badge
	OrganizationID string
	Organization   string
	CreatedAt      string
	LastLogin      string
}

// UserListView drives the users listing.
type UserListView struct {
	Query      string
	Statuses   []Option
	Roles      []Option
	Rows       []UserRow
	Pagination PaginationView
	ExportURL  string
}

// UserFormValues are the editable user fields echoed back on validation
// failure.
type UserFormValues struct {
	Name           string
	Email          string
	Role           string
	Status         string
	OrganizationID string
}

// UserFormView drives the create and edit forms.
type UserFormView struct {
	Title         string
	Action        string
	CancelURL     string
	Editing       bool
	Values        UserFormValues
	Error         string
	Roles         []Option
	Statuses      []Option
	Organizations []Option
}

// UserDetailView drives the user detail page.
type UserDetailView struct {
	User      UserRow
	EditURL   string
	DeleteURL string
	ExportURL string
	CanDelete bool
	Error     string
}

// UserStatusBadge renders a user status chip.
func UserStatusBadge(loc Localizer, status string) Badge {
	color := "default"
	switch status {
	case "active":
		color = "success"
	case "invited":
		color = "info"
	case "suspended":
		color = "error"
	}
	return Badge{Label: T(loc, "users.status."+status), Color: color}
}

var userColumns = []string{
	"users.field.name",
	"users.field.email",
	"users.field.role",
	"users.field.status",
	"users.field.organization",
	"users.field.created_at",
	"users.field.last_login",
}

// passwordLabel tells editors that a blank password keeps the current one.
func passwordLabel(editing bool, loc Localizer) string {
	if editing {
		return T(loc, "users.field.password_keep")
	}
	return T(loc, "users.field.password")
}
