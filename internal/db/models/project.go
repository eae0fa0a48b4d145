package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Field names for project model
const (
	// ProjectIDField is the column name for the project id
	ProjectIDField = "id"
	// ProjectNameField is the column name for the project name
	ProjectNameField = "name"
	// ProjectPlannerTaskIDField is the column name for the planner task id
	ProjectPlannerTaskIDField = "planner_task_id"
	// ProjectPortfolioField is the column name for the portfolio
	ProjectPortfolioField = "portfolio"
	// ProjectStatusField is the column name for the project status
	ProjectStatusField = "status"
	// ProjectStartDateField is the column name for the start date
	ProjectStartDateField = "start_date"
	// ProjectEndDateField is the column name for the end date
	ProjectEndDateField = "end_date"
)

// DefaultPortfolio is stored whenever a project has no portfolio
const DefaultPortfolio = "General"

// Column limits enforced by the schema
const (
	MaxNameLength          = 200
	MaxPlannerTaskIDLength = 100
	MaxPortfolioLength     = 100
	MaxStatusLength        = 50
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

// Project status constants
const (
	// ProjectStatusInitiated is the status every project is created with
	ProjectStatusInitiated ProjectStatus = "Initiated"
	// ProjectStatusApproved indicates the intake was approved
	ProjectStatusApproved ProjectStatus = "Approved"
	// ProjectStatusInProgress indicates work has started
	ProjectStatusInProgress ProjectStatus = "InProgress"
	// ProjectStatusOnHold indicates work is paused
	ProjectStatusOnHold ProjectStatus = "OnHold"
	// ProjectStatusCompleted indicates the project is done
	ProjectStatusCompleted ProjectStatus = "Completed"
	// ProjectStatusRejected indicates the intake was declined
	ProjectStatusRejected ProjectStatus = "Rejected"
)

// ProjectStatuses lists the canonical statuses in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusInitiated,
	ProjectStatusApproved,
	ProjectStatusInProgress,
	ProjectStatusOnHold,
	ProjectStatusCompleted,
	ProjectStatusRejected,
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// ParseProjectStatus matches str case-insensitively against the canonical
// statuses and returns the canonically-cased member.
func ParseProjectStatus(str string) (ProjectStatus, error) {
	str = strings.TrimSpace(str)
	for _, status := range ProjectStatuses {
		if strings.EqualFold(str, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid project status: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for ProjectStatus
func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseProjectStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// Project is a single intake tracked by the portfolio.
// Deletes are hard deletes, so the model deliberately has no gorm.DeletedAt.
type Project struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"size:200;not null"`
	Status        ProjectStatus `json:"status" gorm:"size:50;not null;default:Initiated"`
	PlannerTaskID string        `json:"plannerTaskId" gorm:"size:100;not null;uniqueIndex:idx_projects_planner_task_id"`
	Portfolio     string        `json:"portfolio" gorm:"size:100;not null;default:General;index"`
	StartDate     *time.Time    `json:"startDate"`
	EndDate       *time.Time    `json:"endDate"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// PortfolioOrDefault returns the portfolio, falling back to DefaultPortfolio
func (p Project) PortfolioOrDefault() string {
	if strings.TrimSpace(p.Portfolio) == "" {
		return DefaultPortfolio
	}
	return p.Portfolio
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProjectStatusInitiated
	}
	if strings.TrimSpace(p.Portfolio) == "" {
		p.Portfolio = DefaultPortfolio
	}
	return nil
}
