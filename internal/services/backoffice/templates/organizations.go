package templates

// OrganizationsTableID is the swap target for the organizations table partial.
const OrganizationsTableID = "organizations-table"

// OrganizationRow is one organization as displayed in tables and detail
// pages.
type OrganizationRow struct {
	ID        string
	Name      string
	Slug      string
	Plan      string
	Status    Badge
	Seats     string
	Revenue   string
	Country   string
	Members   string
	CreatedAt string
}

// OrganizationListView drives the organizations listing.
type OrganizationListView struct {
	Query      string
	Statuses   []Option
	Plans      []Option
	Rows       []OrganizationRow
	Pagination PaginationView
	ExportURL  string
}

// OrganizationFormValues are the editable organization fields as submitted.
type OrganizationFormValues struct {
	Name    string
	Slug    string
	Plan    string
	Status  string
	Seats   string
	Revenue string
	Country string
}

// OrganizationFormView drives the create and edit forms.
type OrganizationFormView struct {
	Title     string
	Action    string
	CancelURL string
	Values    OrganizationFormValues
	Error     string
	Plans     []Option
	Statuses  []Option
}

// OrganizationDetailView drives the organization detail page.
type OrganizationDetailView struct {
	Organization OrganizationRow
	Members      []UserRow
	EditURL      string
	DeleteURL    string
	ExportURL    string
	Error        string
}

// OrganizationStatusBadge renders an organization status chip.
func OrganizationStatusBadge(loc Localizer, status string) Badge {
	color := "default"
	switch status {
	case "active":
		color = "success"
	case "trial":
		color = "warning"
	case "churned":
		color = "error"
	}
	return Badge{Label: T(loc, "organizations.status."+status), Color: color}
}

var organizationColumns = []string{
	"organizations.field.name",
	"organizations.field.plan",
	"organizations.field.status",
	"organizations.field.members",
	"organizations.field.seats",
	"organizations.field.revenue",
	"organizations.field.country",
	"organizations.field.created_at",
}

var memberColumns = []string{
	"users.field.name",
	"users.field.email",
	"users.field.role",
	"users.field.status",
}
