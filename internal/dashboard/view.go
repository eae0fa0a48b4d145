package dashboard

import (
	"time"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// Row is a project together with its timeline bar
type Row struct {
	Project models.Project `json:"project"`
	Bar     BarGeometry    `json:"bar"`
}

// RowGroup is a portfolio heading with its rows
type RowGroup struct {
	Portfolio string `json:"portfolio"`
	Rows      []Row  `json:"rows"`
}

// View is everything a dashboard renders for one set of filters
type View struct {
	Filters    Filters          `json:"filters"`
	Projects   []models.Project `json:"projects"`
	Total      int              `json:"total"`
	Counts     StatusCounts     `json:"counts"`
	Portfolios []string         `json:"portfolios"`
	Range      Range            `json:"range"`
	Ticks      []Tick           `json:"ticks"`
	Groups     []RowGroup       `json:"groups"`
}

// Derive computes the view of projects under filters. Portfolio options come
// from the unfiltered list; everything else from the filtered set.
func Derive(projects []models.Project, filters Filters, now time.Time) View {
	filters = filters.normalized()
	filtered := Filter(projects, filters)
	bounds := Bounds(filtered, now)

	groups := GroupByPortfolio(filtered)
	rowGroups := make([]RowGroup, 0, len(groups))
	for _, g := range groups {
		rows := make([]Row, 0, len(g.Projects))
		for _, p := range g.Projects {
			rows = append(rows, Row{Project: p, Bar: Bar(p, bounds)})
		}
		rowGroups = append(rowGroups, RowGroup{Portfolio: g.Portfolio, Rows: rows})
	}

	return View{
		Filters:    filters,
		Projects:   filtered,
		Total:      len(projects),
		Counts:     CountByStatus(filtered),
		Portfolios: Portfolios(projects),
		Range:      bounds,
		Ticks:      Ticks(bounds),
		Groups:     rowGroups,
	}
}
