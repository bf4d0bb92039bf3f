package organizations

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
	http.Redirect(w, r, routepath.Organizations, http.StatusMovedPermanently)
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
		Title:    templates.T(loc, "organizations.title"),
		Nav:      templates.NavOrganizations,
		Fragment: templates.OrganizationsPage(view, loc),
	})
}

func (h handlers) handleTable(w http.ResponseWriter, r *http.Request) {
	view, ok := h.listView(w, r)
	if !ok {
		return
	}
	loc, _ := h.PageLocalizer(w, r)
	htmx.RenderPage(w, r, htmx.Page{Fragment: templates.OrganizationsTable(view, loc)})
}

func (h handlers) listView(w http.ResponseWriter, r *http.Request) (templates.OrganizationListView, bool) {
	query := parseListQuery(r.URL.Query())
	result, err := h.service.list(r.Context(), query)
	if err != nil {
		h.WriteError(w, r, err)
		return templates.OrganizationListView{}, false
	}
	loc, tag := h.PageLocalizer(w, r)
	rows := make([]templates.OrganizationRow, 0, len(result.Items))
	for _, org := range result.Items {
		rows = append(rows, organizationRow(org, loc, tag))
	}
	return templates.OrganizationListView{
		Query:      query.Query,
		Statuses:   statusOptions(loc, string(query.Status), "organizations.filter.any_status"),
		Plans:      planOptions(loc, string(query.Plan), "organizations.filter.any_plan"),
		Rows:       rows,
		Pagination: pagination(query, result.Total),
		ExportURL:  routepath.WithQuery(routepath.OrganizationsExport, query.values()),
	}, true
}

func (h handlers) handleNew(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, formState{
		values: templates.OrganizationFormValues{
			Plan:   string(storage.PlanFree),
			Status: string(storage.OrganizationTrial),
			Seats:  "1",
		},
	})
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	input, ok := h.parseInput(w, r)
	if !ok {
		return
	}
	org, err := h.service.create(r.Context(), input)
	if err != nil {
		h.writeFormError(w, r, formState{values: formValues(input)}, err)
		return
	}
	h.Redirect(w, r, routepath.Organization(org.ID), flash.Success("organizations.flash.created"))
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.get(r.Context(), r.PathValue("orgID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderDetail(w, r, http.StatusOK, org, "")
}

func (h handlers) handleEdit(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.get(r.Context(), r.PathValue("orgID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	h.renderForm(w, r, http.StatusOK, formState{
		orgID: org.ID,
		values: templates.OrganizationFormValues{
			Name:    org.Name,
			Slug:    org.Slug,
			Plan:    string(org.Plan),
			Status:  string(org.Status),
			Seats:   strconv.Itoa(org.Seats),
			Revenue: FormatCents(org.MonthlyRevenueCents),
			Country: org.Country,
		},
	})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	input, ok := h.parseInput(w, r)
	if !ok {
		return
	}
	org, err := h.service.update(r.Context(), orgID, input)
	if err != nil {
		h.writeFormError(w, r, formState{orgID: orgID, values: formValues(input)}, err)
		return
	}
	h.Redirect(w, r, routepath.Organization(org.ID), flash.Success("organizations.flash.updated"))
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if err := h.service.delete(r.Context(), orgID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			org, getErr := h.service.get(r.Context(), orgID)
			if getErr != nil {
				h.WriteError(w, r, getErr)
				return
			}
			loc, _ := h.PageLocalizer(w, r)
			h.renderDetail(w, r, weberror.Status(err), org, weberror.PublicMessage(loc, err))
			return
		}
		h.WriteError(w, r, err)
		return
	}
	h.Redirect(w, r, routepath.Organizations, flash.Success("organizations.flash.deleted"))
}

func (h handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.service.exportAll(r.Context(), parseListQuery(r.URL.Query()))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	records := make([]csvexport.Record, 0, len(orgs))
	for _, org := range orgs {
		records = append(records, exportRecord(org))
	}
	if err := csvexport.WriteBulk(w, records, h.Now()); err != nil {
		h.WriteError(w, r, err)
	}
}

func (h handlers) handleExportOne(w http.ResponseWriter, r *http.Request) {
	org, err := h.service.get(r.Context(), r.PathValue("orgID"))
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	if err := csvexport.WriteSingle(w, exportRecord(org), h.Now()); err != nil {
		h.WriteError(w, r, err)
	}
}

type formState struct {
	orgID  string
	values templates.OrganizationFormValues
	err    string
}

func (h handlers) parseInput(w http.ResponseWriter, r *http.Request) (Input, bool) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.EK(apperrors.KindInvalidInput, "error.form_parse", "failed to parse organization form"))
		return Input{}, false
	}
	return Input{
		Name:    r.PostFormValue("name"),
		Slug:    r.PostFormValue("slug"),
		Plan:    r.PostFormValue("plan"),
		Status:  r.PostFormValue("status"),
		Seats:   r.PostFormValue("seats"),
		Revenue: r.PostFormValue("revenue"),
		Country: r.PostFormValue("country"),
	}, true
}

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
	loc, _ := h.PageLocalizer(w, r)
	view := templates.OrganizationFormView{
		Title:     templates.T(loc, "organizations.new.title"),
		Action:    routepath.Organizations,
		CancelURL: routepath.Organizations,
		Values:    state.values,
		Error:     state.err,
		Plans:     planOptions(loc, state.values.Plan, ""),
		Statuses:  statusOptions(loc, state.values.Status, ""),
	}
	if state.orgID != "" {
		view.Title = templates.T(loc, "organizations.edit.title")
		view.Action = routepath.OrganizationEdit(state.orgID)
		view.CancelURL = routepath.Organization(state.orgID)
	}
	h.WritePage(w, r, modulehandler.Page{
		Title:    view.Title,
		Status:   status,
		Nav:      templates.NavOrganizations,
		Fragment: templates.OrganizationFormPage(view, loc),
	})
}

func (h handlers) renderDetail(w http.ResponseWriter, r *http.Request, status int, org storage.Organization, errMessage string) {
	members, err := h.service.members(r.Context(), org.ID)
	if err != nil {
		h.WriteError(w, r, err)
		return
	}
	loc, tag := h.PageLocalizer(w, r)
	view := templates.OrganizationDetailView{
		Organization: organizationRow(org, loc, tag),
		EditURL:      routepath.OrganizationEdit(org.ID),
		DeleteURL:    routepath.OrganizationDelete(org.ID),
		ExportURL:    routepath.OrganizationExport(org.ID),
		Error:        errMessage,
	}
	for _, member := range members {
		view.Members = append(view.Members, templates.UserRow{
			ID:     member.ID,
			Name:   member.Name,
			Email:  member.Email,
			Role:   templates.T(loc, "users.role."+string(member.Role)),
			Status: templates.UserStatusBadge(loc, string(member.Status)),
		})
	}
	h.WritePage(w, r, modulehandler.Page{
		Title:    org.Name,
		Status:   status,
		Nav:      templates.NavOrganizations,
		Fragment: templates.OrganizationDetailPage(view, loc),
	})
}

func parseListQuery(values url.Values) ListQuery {
	query := ListQuery{
		Query: strings.TrimSpace(values.Get("q")),
		Page:  defaultListingPage,
	}
	if status, ok := storage.ParseOrganizationStatus(values.Get("status")); ok {
		query.Status = status
	}
	if plan, ok := storage.ParsePlan(values.Get("plan")); ok {
		query.Plan = plan
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
		"plan":   {string(q.Plan)},
	}
}

func pagination(q ListQuery, total int) templates.PaginationView {
	pages := totalPages(total, PageSize)
	view := templates.PaginationView{Page: q.Page, TotalPages: pages, Total: total}
	if q.Page > 1 {
		values := q.values()
		values.Set("page", strconv.Itoa(min(q.Page-1, pages)))
		view.PrevURL = routepath.WithQuery(routepath.Organizations, values)
	}
	if q.Page < pages {
		values := q.values()
		values.Set("page", strconv.Itoa(q.Page+1))
		view.NextURL = routepath.WithQuery(routepath.Organizations, values)
	}
	return view
}

func organizationRow(org storage.Organization, loc templates.Localizer, tag language.Tag) templates.OrganizationRow {
	return templates.OrganizationRow{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		Plan:      templates.T(loc, "organizations.plan."+string(org.Plan)),
		Status:    templates.OrganizationStatusBadge(loc, string(org.Status)),
		Seats:     format.Integer(tag, int64(org.Seats)),
		Revenue:   format.Currency(tag, org.MonthlyRevenueCents),
		Country:   org.Country,
		Members:   format.Integer(tag, int64(org.MemberCount)),
		CreatedAt: format.ShortDate(tag, org.CreatedAt),
	}
}

func formValues(input Input) templates.OrganizationFormValues {
	return templates.OrganizationFormValues{
		Name:    strings.TrimSpace(input.Name),
		Slug:    strings.TrimSpace(input.Slug),
		Plan:    strings.TrimSpace(input.Plan),
		Status:  strings.TrimSpace(input.Status),
		Seats:   strings.TrimSpace(input.Seats),
		Revenue: strings.TrimSpace(input.Revenue),
		Country: strings.TrimSpace(input.Country),
	}
}

func statusOptions(loc templates.Localizer, selected, anyKey string) []templates.Option {
	var options []templates.Option
	if anyKey != "" {
		options = append(options, templates.Option{Value: "", Label: templates.T(loc, anyKey), Selected: selected == ""})
	}
	for _, status := range storage.OrganizationStatuses() {
		options = append(options, templates.Option{
			Value:    string(status),
			Label:    templates.T(loc, "organizations.status."+string(status)),
			Selected: string(status) == selected,
		})
	}
	return options
}

func planOptions(loc templates.Localizer, selected, anyKey string) []templates.Option {
	var options []templates.Option
	if anyKey != "" {
		options = append(options, templates.Option{Value: "", Label: templates.T(loc, anyKey), Selected: selected == ""})
	}
	for _, plan := range storage.Plans() {
		options = append(options, templates.Option{
			Value:    string(plan),
			Label:    templates.T(loc, "organizations.plan."+string(plan)),
			Selected: string(plan) == selected,
		})
	}
	return options
}

func exportRecord(org storage.Organization) csvexport.Record {
	record := csvexport.NewRecord()
	record.Set("id", csvexport.String(org.ID))
	record.Set("name", csvexport.String(org.Name))
	record.Set("slug", csvexport.String(org.Slug))
	record.Set("plan", csvexport.String(string(org.Plan)))
	record.Set("status", csvexport.String(string(org.Status)))
	record.Set("seats", csvexport.Int(int64(org.Seats)))
	record.Set("monthly_revenue_cents", csvexport.Int(org.MonthlyRevenueCents))
	record.Set("country", optionalString(org.Country))
	record.Set("members", csvexport.Int(int64(org.MemberCount)))
	record.Set("created_at", timeValue(org.CreatedAt))
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
