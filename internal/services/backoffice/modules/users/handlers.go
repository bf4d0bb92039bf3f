package users

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/csvexport"
	"github.com/louisbranch/backoffice/internal/platform/format"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	apperrors "github.com/louisbranch/backoffice/internal/services/backoffice/platform/errors"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/flash"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/htmx"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/modulehandler"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/weberror"
	"github.com/louisbranch/backoffice/internal/services/backoffice/routepath"
	"github.com/louisbranch/backoffice/internal/services/backoffice/storage"
	"github.com/louisbranch/backoffice/internal/services/backoffice/templates"
	"golang.org/x/text/language"
)

type handlers struct {
	modulehandler.Base
	service service
}

func newHandlers(s service, deps module.Dependencies) handlers {
	return handlers{Base: modulehandler.NewBase(deps), service: s}
}

func (h handlers) redirectList(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.Users, http.StatusMovedPermanently)
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	view, ok := h.listView(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	h.WritePage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "users.title"),
		Nav:      templates.NavUsers,
		Fragment: templates.UsersPage(view, loc),
	})
}

func (h handlers) handleTable(w http.ResponseWriter, r *http.Request) {
	view, ok := h.listView(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	htmx.RenderPage(w, r, htmx.Page{Fragment: templates.UsersTable(view, loc)})
}

func (h handlers) listView(w http.ResponseWriter, r *http.Request) (templates.UserListView, bool) {
	query := parseListQuery(r.URL.Query())
	result, err := h.service.list(r.Context(), query)
	if err != nil {
		h.WriteError(w, r, err)
		return templates.UserListView{}, false
	}
	loc, tag := h.PageLocalizer(w, r)
	now := h.Now()
	rows := make([]templates.UserRow, 0, len(result.Items))
	for _, user := range result.Items {
		rows = append(rows, userRow(user, loc, tag, now))
	}
	return templates.UserListView{
		Query:      query.Query,
		Statuses:   statusOptions(loc, string(query.Status), "users.filter.any_status"),
		Roles:      roleOptions(loc, string(query.Role), "users.filter.any_role"),
		Rows:       rows,
		Pagination: pagination(query, result.Total),
		ExportURL:  routepath.WithQuery(routepath.UsersExport, query.values()),
	}, true
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formState{
		values: templates.UserFormValues{Role: string(storage.RoleMember), Status: string(storage.UserInvited)},
	})
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseInput(w, r)
	if !ok {
		return
	}
	user, err := h.service.create(r.Context(), input)
	if err != nil {
		h.writeFormError(w, r, formState{values: formValues(input)}, err)
		return
	}
	h.Redirect(w, r, routepath.User(user.ID), flash.Success("users.flash.created"))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.get(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderDetail(w, r, http.StatusOK, user, "")
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.get(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, formState{
		userID: user.ID,
		values: templates.UserFormValues{
			Name:           user.Name,
			Email:          user.Email,
			Role:           string(user.Role),
			Status:         string(user.Status),
			OrganizationID: user.OrganizationID,
		},
	})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	input, ok := h.parseInput(w, r)
	if !ok {
		return
	}
	user, err := h.service.update(r.Context(), userID, input)
	if err != nil {
		h.writeFormError(w, r, formState{userID: userID, values: formValues(input)}, err)
		return
	}
	h.Redirect(w, r, routepath.User(user.ID), flash.Success("users.flash.updated"))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userID")
	actor := h.Viewer(r)
	if err := h.service.delete(r.Context(), actor.UserID, userID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			user, getErr := h.service.get(r.Context(), userID)
			if getErr != nil {
				h.WriteError(w, r, getErr)
				return
			}
			loc, _ := h.PageLocalizer(w, r)
			h.renderDetail(w, r, weberror.Status(err), user, weberror.PublicMessage(loc, err))
			return
		}
		h.WriteError(w, r, err)
		return
	}
	h.Redirect(w, r, routepath.Users, flash.Success("users.flash.deleted"))
}

func (h handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.exportAll(r.Context(), parseListQuery(r.URL.Query()))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	records := make([]csvexport.Record, 0, len(users))
	for _, user := range users {
		records = append(records, exportRecord(user))
	}
	if err := csvexport.WriteBulk(w, records, h.Now()); err != nil {
		h.WriteError(w, r, err)
	}
}

func (h handlers) handleExportOne(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.get(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := csvexport.WriteSingle(w, exportRecord(user), h.Now()); err != nil {
		h.WriteError(w, r, err)
	}
}

type formState struct {
	userID string
	values templates.UserFormValues
	err    string
}

func (h handlers) parseInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.form_parse", "failed to parse user form"))
		return Input{}, false
	}
	return Input{
		Name:           r.PostFormValue("name"),
		Email:          r.PostFormValue("email"),
		Role:           r.PostFormValue("role"),
		Status:         r.PostFormValue("status"),
		OrganizationID: r.PostFormValue("organization_id"),
		Password:       r.PostFormValue("password"),
	}, true
}

// writeFormError re-renders the form for input and conflict failures and
// falls back to the error page otherwise.
func (h handlers) writeFormError(w http.ResponseWriter, r *http.Request, state formState, err error) {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput, apperrors.KindConflict:
		loc, _ := h.PageLocalizer(w, r)
		state.err = weberror.PublicMessage(loc, err)
		h.renderForm(w, r, weberror.Status(err), state)
	default:
		h.WriteError(w, r, err)
	}
}

func (h handlers) renderForm(w http.ResponseWriter, r *http.Request, status int, state formState) {
	orgs, err := h.service.organizations(r.Context())
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	view := templates.UserFormView{
		Title:         templates.T(loc, "users.new.title"),
		Action:        routepath.Users,
		CancelURL:     routepath.Users,
		Values:        state.values,
		Error:         state.err,
		Roles:         roleOptions(loc, state.values.Role, ""),
		Statuses:      statusOptions(loc, state.values.Status, ""),
		Organizations: organizationOptions(loc, orgs, state.values.OrganizationID),
	}
	if state.userID != "" {
		view.Title = templates.T(loc, "users.edit.title")
		view.Action = routepath.UserEdit(state.userID)
		view.CancelURL = routepath.User(state.userID)
		view.Editing = true
	}
	h.WritePage(w, r, modulehandler.Page{
		Title:    view.Title,
		Status:   status,
		Nav:      templates.NavUsers,
		Fragment: templates.UserFormPage(view, loc),
	})
}

func (h handlers) renderDetail(w http.ResponseWriter, r *http.Request, status int, user storage.User, errMessage string) {
	loc, tag := h.PageLocalizer(w, r)
	view := templates.UserDetailView{
		User:      userRow(user, loc, tag, h.Now()),
		EditURL:   routepath.UserEdit(user.ID),
		DeleteURL: routepath.UserDelete(user.ID),
		ExportURL: routepath.UserExport(user.ID),
		CanDelete: h.Viewer(r).UserID != user.ID,
		Error:     errMessage,
	}
	h.WritePage(w, r, modulehandler.Page{
		Title:    user.Name,
		Status:   status,
		Nav:      templates.NavUsers,
		Fragment: templates.UserDetailPage(view, loc),
	})
}

func parseListQuery(values url.Values) ListQuery {
	query := ListQuery{
		Query: strings.TrimSpace(values.Get("q")),
		Page:  defaultListingPage,
	}
	if status, ok := storage.ParseUserStatus(values.Get("status")); ok {
		query.Status = status
	}
	if role, ok := storage.ParseRole(values.Get("role")); ok {
		query.Role = role
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		query.Page = page
	}
	return query
}

func (q ListQuery) values() url.Values {
	return url.Values{
		"q":      {q.Query},
		"status": {string(q.Status)},
		"role":   {string(q.Role)},
	}
}

func pagination(q ListQuery, total int) templates.PaginationView {
	pages := totalPages(total, PageSize)
	view := templates.PaginationView{Page: q.Page, TotalPages: pages, Total: total}
	if q.Page > 1 {
		values := q.values()
		values.Set("page", strconv.Itoa(min(q.Page-1, pages)))
		view.PrevURL = routepath.WithQuery(routepath.Users, values)
	}
	if q.Page < pages {
		values := q.values()
		values.Set("page", strconv.Itoa(q.Page+1))
		view.NextURL = routepath.WithQuery(routepath.Users, values)
	}
	return view
}

func userRow(user storage.User, loc templates.Localizer, tag language.Tag, now time.Time) templates.UserRow {
	lastLogin := format.Relative(user.LastLoginAt, now)
	if lastLogin == "" {
		lastLogin = templates.T(loc, "users.never")
	}
	return templates.UserRow{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           templates.T(loc, "users.role."+string(user.Role)),
		Status:         templates.UserStatusBadge(loc, string(user.Status)),
		OrganizationID: user.OrganizationID,
		Organization:   user.OrganizationName,
		CreatedAt:      format.ShortDate(tag, user.CreatedAt),
		LastLogin:      lastLogin,
	}
}

func formValues(input Input) templates.UserFormValues {
	return templates.UserFormValues{
		Name:           strings.TrimSpace(input.Name),
		Email:          strings.TrimSpace(input.Email),
		Role:           strings.TrimSpace(input.Role),
		Status:         strings.TrimSpace(input.Status),
		OrganizationID: strings.TrimSpace(input.OrganizationID),
	}
}

func statusOptions(loc templates.Localizer, selected, anyKey string) []templates.Option {
	var options []templates.Option
	if anyKey != "" {
		options = append(options, templates.Option{Value: "", Label: templates.T(loc, anyKey), Selected: selected == ""})
	}
	for _, status := range storage.UserStatuses() {
		options = append(options, templates.Option{
			Value:    string(status),
			Label:    templates.T(loc, "users.status."+string(status)),
			Selected: string(status) == selected,
		})
	}
	return options
}

func roleOptions(loc templates.Localizer, selected, anyKey string) []templates.Option {
	var options []templates.Option
	if anyKey != "" {
		options = append(options, templates.Option{Value: "", Label: templates.T(loc, anyKey), Selected: selected == ""})
	}
	for _, role := range storage.Roles() {
		options = append(options, templates.Option{
			Value:    string(role),
			Label:    templates.T(loc, "users.role."+string(role)),
			Selected: string(role) == selected,
		})
	}
	return options
}

func organizationOptions(loc templates.Localizer, orgs []storage.Organization, selected string) []templates.Option {
	options := []templates.Option{{Value: "", Label: templates.T(loc, "users.field.no_organization"), Selected: selected == ""}}
	for _, org := range orgs {
		options = append(options, templates.Option{Value: org.ID, Label: org.Name, Selected: org.ID == selected})
	}
	return options
}

func exportRecord(user storage.User) csvexport.Record {
	record := csvexport.NewRecord()
	record.Set("id", csvexport.String(user.ID))
	record.Set("name", csvexport.String(user.Name))
	record.Set("email", csvexport.String(user.Email))
	record.Set("role", csvexport.String(string(user.Role)))
	record.Set("status", csvexport.String(string(user.Status)))
	record.Set("organization_id", optionalString(user.OrganizationID))
	record.Set("organization", optionalString(user.OrganizationName))
	record.Set("created_at", timeValue(user.CreatedAt))
	record.Set("last_login_at", timeValue(user.LastLoginAt))
	return record
}

func optionalString(value string) csvexport.Value {
	if value == "" {
		return csvexport.Null()
	}
	return csvexport.String(value)
}

func timeValue(t time.Time) csvexport.Value {
	if t.IsZero() {
		return csvexport.Null()
	}
	return csvexport.String(t.UTC().Format(time.RFC3339))
}
