package templates

import "strconv"

// StatCard is one headline number.
type StatCard struct {
	Label   string
	Value   string
	Caption string
	Error   string
}

// RecentUserRow is one entry of the recent signups widget.
type RecentUserRow struct {
	ID     string
	Name   string
	Email  string
	Joined string
}

// ChartBar is one bar of the signups chart.
type ChartBar struct {
	Label   string
	Value   int
	Display string
}

// BreakdownRow is one line of a share table.
type BreakdownRow struct {
	Label string
	Value string
	Share string
}

// DashboardView holds every widget. A widget with a non-empty Error renders
// that message in place of its content.
type DashboardView struct {
	Stats            []StatCard
	RecentUsers      []RecentUserRow
	RecentUsersError string
	Signups          []ChartBar
	SignupsError     string
	Roles            []BreakdownRow
	RolesError       string
	Plans            []BreakdownRow
	PlansError       string
}

const (
	chartBarWidth  = 48
	chartGap       = 16
	chartPlotTop   = 20
	chartPlot      = 120
	chartHeight    = 170
	chartLabelBase = 160
)

// plotBar is a ChartBar placed on the chart canvas.
type plotBar struct {
	ChartBar
	x      int
	y      int
	height int
}

func (b plotBar) center() string {
	return strconv.Itoa(b.x + chartBarWidth/2)
}

func chartViewBox(bars int) string {
	width := bars*(chartBarWidth+chartGap) + chartGap
	return "0 0 " + strconv.Itoa(width) + " " + strconv.Itoa(chartHeight)
}

// plotBars scales bar heights to the largest value. An all-zero series
// renders flat.
func plotBars(bars []ChartBar) []plotBar {
	peak := 0
	for _, bar := range bars {
		peak = max(peak, bar.Value)
	}
	plotted := make([]plotBar, len(bars))
	for i, bar := range bars {
		height := 0
		if peak > 0 {
			height = bar.Value * chartPlot / peak
		}
		plotted[i] = plotBar{
			ChartBar: bar,
			x:        chartGap + i*(chartBarWidth+chartGap),
			y:        chartPlotTop + chartPlot - height,
			height:   height,
		}
	}
	return plotted
}
