package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: 1, Name: "Network Refresh", Portfolio: "IT", PlannerTaskID: "PLN-1", Status: models.ProjectStatusApproved},
		{ID: 2, Name: "Hiring Portal", Portfolio: "HR", PlannerTaskID: "PLN-2", Status: models.ProjectStatusCompleted},
	}
}

func ids(projects []models.Project) []uint {
	out := make([]uint, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	projects := append(sampleProjects(),
		models.Project{ID: 3, Name: "Straße Upgrade", PlannerTaskID: "PLN-3", Status: models.ProjectStatusOnHold},
	)

	tests := []struct {
		name    string
		filters Filters
		want    []uint
	}{
		{name: "no filters", filters: DefaultFilters(), want: []uint{1, 2, 3}},
		{name: "zero value selects all", filters: Filters{}, want: []uint{1, 2, 3}},
		{name: "portfolio", filters: Filters{Portfolio: "IT", Status: All}, want: []uint{1}},
		{name: "status substring in query", filters: Filters{Query: "approved"}, want: []uint{1}},
		{name: "query on name", filters: Filters{Query: "PORTAL"}, want: []uint{2}},
		{name: "query on planner task id", filters: Filters{Query: "pln-3"}, want: []uint{3}},
		{name: "query with unicode folding", filters: Filters{Query: "STRASSE"}, want: []uint{3}},
		{name: "blank query", filters: Filters{Query: "   "}, want: []uint{1, 2, 3}},
		{name: "leading space is part of the query", filters: Filters{Query: " portal"}, want: []uint{2}},
		{name: "space does not match a word start", filters: Filters{Query: " it"}, want: []uint{}},
		{name: "trailing space is part of the query", filters: Filters{Query: "portal "}, want: []uint{}},
		{name: "missing portfolio matches General", filters: Filters{Portfolio: "General"}, want: []uint{3}},
		{name: "query matches defaulted portfolio only when stored", filters: Filters{Query: "general"}, want: []uint{}},
		{name: "status is exact", filters: Filters{Status: "completed"}, want: []uint{}},
		{name: "status selector", filters: Filters{Status: "Completed"}, want: []uint{2}},
		{name: "combined", filters: Filters{Query: "pln", Portfolio: "HR", Status: "Completed"}, want: []uint{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(projects, tt.filters)))
		})
	}
}

func TestCountByStatus(t *testing.T) {
	projects := append(sampleProjects(), models.Project{ID: 3, Status: models.ProjectStatusApproved})

	counts := CountByStatus(projects)
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 2, counts.ByStatus[models.ProjectStatusApproved])
	assert.Equal(t, 1, counts.ByStatus[models.ProjectStatusCompleted])
	assert.Equal(t, 0, counts.ByStatus[models.ProjectStatusRejected])
	assert.Len(t, counts.ByStatus, len(models.ProjectStatuses))
}

func TestPortfolios(t *testing.T) {
	projects := []models.Project{
		{Portfolio: "IT"}, {Portfolio: ""}, {Portfolio: "HR"}, {Portfolio: "IT"}, {Portfolio: "General"},
	}
	assert.Equal(t, []string{"All", "IT", "General", "HR"}, Portfolios(projects))
	assert.Equal(t, []string{"All"}, Portfolios(nil))
}

func TestGroupByPortfolio(t *testing.T) {
	projects := []models.Project{
		{ID: 1, Portfolio: "IT"}, {ID: 2}, {ID: 3, Portfolio: "IT"}, {ID: 4, Portfolio: "HR"},
	}

	groups := GroupByPortfolio(projects)
	assert.Len(t, groups, 3)
	assert.Equal(t, "IT", groups[0].Portfolio)
	assert.Equal(t, []uint{1, 3}, ids(groups[0].Projects))
	assert.Equal(t, "General", groups[1].Portfolio)
	assert.Equal(t, []uint{2}, ids(groups[1].Projects))
	assert.Equal(t, "HR", groups[2].Portfolio)
}
