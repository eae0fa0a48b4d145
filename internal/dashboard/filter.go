// Package dashboard derives the read-side view of the project list: the
// filtered set, status counters, timeline geometry, grouping and CSV export.
// Everything here is pure; the current time is always passed in.
package dashboard

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// All is the selector value that disables a portfolio or status filter
const All = "All"

// Filters are the user's current selections
type Filters struct {
	Query     string `json:"query"`
	Portfolio string `json:"portfolio"`
	Status    string `json:"status"`
}

// DefaultFilters selects everything
func DefaultFilters() Filters {
	return Filters{Portfolio: All, Status: All}
}

// normalized treats empty selectors as All
func (f Filters) normalized() Filters {
	if f.Portfolio == "" {
		f.Portfolio = All
	}
	if f.Status == "" {
		f.Status = All
	}
	return f
}

// Filter returns the projects matching every filter, preserving order
func Filter(projects []models.Project, filters Filters) []models.Project {
	filters = filters.normalized()

	// A Caser is stateful, so each call gets its own
	fold := cases.Fold()
	// Whitespace only decides whether the query is blank; matching uses it as typed
	hasQuery := strings.TrimSpace(filters.Query) != ""
	query := fold.String(filters.Query)

	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if hasQuery && !matchesQuery(fold, p, query) {
			continue
		}
		if filters.Portfolio != All && p.PortfolioOrDefault() != filters.Portfolio {
			continue
		}
		if filters.Status != All && string(p.Status) != filters.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(fold cases.Caser, p models.Project, query string) bool {
	for _, field := range []string{p.Name, p.Portfolio, p.PlannerTaskID, string(p.Status)} {
		if field != "" && strings.Contains(fold.String(field), query) {
			return true
		}
	}
	return false
}

// StatusCounts holds the number of projects per canonical status
type StatusCounts struct {
	ByStatus map[models.ProjectStatus]int `json:"byStatus"`
	Total    int                          `json:"total"`
}

// CountByStatus counts projects per canonical status
func CountByStatus(projects []models.Project) StatusCounts {
	counts := StatusCounts{
		ByStatus: make(map[models.ProjectStatus]int, len(models.ProjectStatuses)),
		Total:    len(projects),
	}
	for _, s := range models.ProjectStatuses {
		counts.ByStatus[s] = 0
	}
	for _, p := range projects {
		if _, ok := counts.ByStatus[p.Status]; ok {
			counts.ByStatus[p.Status]++
		}
	}
	return counts
}

// Portfolios returns the selector options: All, then each portfolio in first-seen order
func Portfolios(projects []models.Project) []string {
	seen := make(map[string]bool)
	out := []string{All}
	for _, p := range projects {
		name := p.PortfolioOrDefault()
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// Group is the set of projects sharing a portfolio
type Group struct {
	Portfolio string           `json:"portfolio"`
	Projects  []models.Project `json:"projects"`
}

// GroupByPortfolio groups projects by portfolio in first-seen order
func GroupByPortfolio(projects []models.Project) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, p := range projects {
		name := p.PortfolioOrDefault()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Portfolio: name})
		}
		groups[i].Projects = append(groups[i].Projects, p)
	}
	return groups
}
