package dashboard

import (
	"log"
	"net/http"
	"time"

	"github.com/louisbranch/backoffice/internal/platform/format"
	module "github.com/louisbranch/backoffice/internal/services/backoffice/module"
	"github.com/louisbranch/backoffice/internal/services/backoffice/platform/modulehandler"
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

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	h.WriteNotFound(w, r)
}

func (h handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	now := h.Now()
	snap := h.service.load(r.Context(), now)
	logWidgetErrors(r, snap)

	loc, tag := h.PageLocalizer(w, r)
	h.WritePage(w, r, modulehandler.Page{
		Title:    templates.T(loc, "dashboard.title"),
		Nav:      templates.NavDashboard,
		Fragment: templates.DashboardPage(buildView(snap, loc, tag, now), loc),
	})
}

func buildView(snap snapshot, loc templates.Localizer, tag language.Tag, now time.Time) templates.DashboardView {
	failed := templates.T(loc, "dashboard.error.widget")
	view := templates.DashboardView{Stats: statCards(snap, loc, tag, failed)}

	if snap.signupsErr != nil {
		view.SignupsError = failed
	} else {
		for _, bucket := range snap.signups {
			view.Signups = append(view.Signups, templates.ChartBar{
				Label:   format.MonthLabel(tag, bucket.Month),
				Value:   bucket.Count,
				Display: format.Integer(tag, int64(bucket.Count)),
			})
		}
	}

	if snap.recentErr != nil {
		view.RecentUsersError = failed
	} else {
		for _, user := range snap.recent {
			view.RecentUsers = append(view.RecentUsers, templates.RecentUserRow{
				ID:     user.ID,
				Name:   user.Name,
				Email:  user.Email,
				Joined: format.Relative(user.CreatedAt, now),
			})
		}
	}

	if snap.usersErr != nil {
		view.RolesError = failed
	} else {
		for _, role := range storage.Roles() {
			count := snap.users.ByRole[role]
			view.Roles = append(view.Roles, templates.BreakdownRow{
				Label: templates.T(loc, "users.role."+string(role)),
				Value: format.Integer(tag, int64(count)),
				Share: format.Percent(tag, int64(count), int64(snap.users.Total)),
			})
		}
	}

	if snap.orgsErr != nil {
		view.PlansError = failed
	} else {
		for _, plan := range storage.Plans() {
			count := snap.orgs.ByPlan[plan]
			view.Plans = append(view.Plans, templates.BreakdownRow{
				Label: templates.T(loc, "organizations.plan."+string(plan)),
				Value: format.Integer(tag, int64(count)),
				Share: format.Percent(tag, int64(count), int64(snap.orgs.Total)),
			})
		}
	}
	return view
}

func statCards(snap snapshot, loc templates.Localizer, tag language.Tag, failed string) []templates.StatCard {
	users := []templates.StatCard{
		{
			Label:   templates.T(loc, "dashboard.stat.total_users"),
			Value:   format.Integer(tag, int64(snap.users.Total)),
			Caption: templates.T(loc, "dashboard.stat.active_caption", format.Percent(tag, int64(snap.users.Active), int64(snap.users.Total))),
		},
		{
			Label: templates.T(loc, "dashboard.stat.active_users"),
			Value: format.Integer(tag, int64(snap.users.Active)),
		},
		{
			Label:   templates.T(loc, "dashboard.stat.new_users"),
			Value:   format.Integer(tag, int64(snap.users.NewSince)),
			Caption: templates.T(loc, "dashboard.stat.new_users_caption"),
		},
	}
	if snap.usersErr != nil {
		for i := range users {
			users[i] = templates.StatCard{Label: users[i].Label, Error: failed}
		}
	}

	orgs := []templates.StatCard{
		{
			Label:   templates.T(loc, "dashboard.stat.organizations"),
			Value:   format.Integer(tag, int64(snap.orgs.Total)),
			Caption: templates.T(loc, "dashboard.stat.organizations_caption", format.Integer(tag, int64(snap.orgs.Active))),
		},
		{
			Label:   templates.T(loc, "dashboard.stat.revenue"),
			Value:   format.CompactCurrency(snap.orgs.RevenueCents),
			Caption: format.Currency(tag, snap.orgs.RevenueCents),
		},
	}
	if snap.orgsErr != nil {
		for i := range orgs {
			orgs[i] = templates.StatCard{Label: orgs[i].Label, Error: failed}
		}
	}
	return append(users, orgs...)
}

func logWidgetErrors(r *http.Request, snap snapshot) {
	for name, err := range map[string]error{
		"user_stats":         snap.usersErr,
		"organization_stats": snap.orgsErr,
		"signups":            snap.signupsErr,
		"recent_users":       snap.recentErr,
	} {
		if err != nil {
			log.Printf("backoffice dashboard widget failed widget=%s path=%s err=%v", name, r.URL.Path, err)
		}
	}
}
