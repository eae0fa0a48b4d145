// Package validation checks and normalizes incoming project fields before they reach the store.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// Error messages returned to callers
const (
	ErrMsgRequiredFields = "Fields 'name' and 'plannerTaskId' are required."
	ErrMsgDateOrder      = "endDate cannot be earlier than startDate."
	ErrMsgStatusRequired = "Field 'status' is required."
)

// dateLayouts are tried in order when parsing startDate and endDate
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

var validate = newValidator()

// newValidator registers one length alias per column limit of the projects table
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterAlias("name_len", fmt.Sprintf("max=%d", models.MaxNameLength))
	v.RegisterAlias("planner_task_id_len", fmt.Sprintf("max=%d", models.MaxPlannerTaskIDLength))
	v.RegisterAlias("portfolio_len", fmt.Sprintf("max=%d", models.MaxPortfolioLength))
	v.RegisterAlias("status_len", fmt.Sprintf("max=%d", models.MaxStatusLength))
	return v
}

// Error is a client-caused input problem. It maps to 400 Bad Request.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// ProjectInput carries the raw fields of a create or full-update request.
// Status is ignored on create.
type ProjectInput struct {
	Name          string
	PlannerTaskID string
	Portfolio     string
	Status        string
	StartDate     string
	EndDate       string
}

// StatusInput carries the raw field of a status-only update
type StatusInput struct {
	Status string
}

// NormalizedProject is a validated project ready to be persisted
type NormalizedProject struct {
	Name          string               `validate:"required,name_len"`
	PlannerTaskID string               `validate:"required,planner_task_id_len"`
	Portfolio     string               `validate:"required,portfolio_len"`
	Status        models.ProjectStatus `validate:"required,status_len"`
	StartDate     *time.Time
	EndDate       *time.Time
}

// Apply copies the normalized fields onto a project model
func (n NormalizedProject) Apply(p *models.Project) {
	p.Name = n.Name
	p.PlannerTaskID = n.PlannerTaskID
	p.Portfolio = n.Portfolio
	p.Status = n.Status
	p.StartDate = n.StartDate
	p.EndDate = n.EndDate
}

// AllowedStatuses renders the canonical statuses for error messages
func AllowedStatuses() string {
	names := make([]string, len(models.ProjectStatuses))
	for i, s := range models.ProjectStatuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}

// ParseStatus matches s case-insensitively against the canonical statuses
func ParseStatus(s string) (models.ProjectStatus, bool) {
	status, err := models.ParseProjectStatus(s)
	if err != nil {
		return "", false
	}
	return status, true
}

// ValidateCreate normalizes a create request. The status is always Initiated.
func ValidateCreate(input ProjectInput) (NormalizedProject, error) {
	return normalize(input, models.ProjectStatusInitiated)
}

// ValidateFullUpdate normalizes a full update, including the client-supplied status.
func ValidateFullUpdate(input ProjectInput) (NormalizedProject, error) {
	if err := checkRequired(input); err != nil {
		return NormalizedProject{}, err
	}
	status, ok := ParseStatus(input.Status)
	if !ok {
		return NormalizedProject{}, invalidStatus()
	}
	return normalize(input, status)
}

// ValidateStatusUpdate returns the canonical status of a status-only update
func ValidateStatusUpdate(input StatusInput) (models.ProjectStatus, error) {
	if strings.TrimSpace(input.Status) == "" {
		return "", &Error{Message: ErrMsgStatusRequired}
	}
	status, ok := ParseStatus(input.Status)
	if !ok {
		return "", invalidStatus()
	}
	return status, nil
}

func invalidStatus() *Error {
	return newError("Invalid status. Allowed: %s", AllowedStatuses())
}

func checkRequired(input ProjectInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.PlannerTaskID) == "" {
		return &Error{Message: ErrMsgRequiredFields}
	}
	return nil
}

func normalize(input ProjectInput, status models.ProjectStatus) (NormalizedProject, error) {
	if err := checkRequired(input); err != nil {
		return NormalizedProject{}, err
	}

	start, err := ParseDate("startDate", input.StartDate)
	if err != nil {
		return NormalizedProject{}, err
	}
	end, err := ParseDate("endDate", input.EndDate)
	if err != nil {
		return NormalizedProject{}, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return NormalizedProject{}, &Error{Message: ErrMsgDateOrder}
	}

	portfolio := strings.TrimSpace(input.Portfolio)
	if portfolio == "" {
		portfolio = models.DefaultPortfolio
	}

	project := NormalizedProject{
		Name:          strings.TrimSpace(input.Name),
		PlannerTaskID: strings.TrimSpace(input.PlannerTaskID),
		Portfolio:     portfolio,
		Status:        status,
		StartDate:     start,
		EndDate:       end,
	}
	if err := validate.Struct(project); err != nil {
		return NormalizedProject{}, fromValidator(err)
	}
	return project, nil
}

// ParseDate parses an optional date field. Blank input yields nil.
func ParseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, newError("Field '%s' is not a valid date: %q", field, value)
}

// jsonNames maps struct fields to the names callers send
var jsonNames = map[string]string{
	"Name":          "name",
	"PlannerTaskID": "plannerTaskId",
	"Portfolio":     "portfolio",
	"Status":        "status",
}

func fromValidator(err error) *Error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &Error{Message: err.Error()}
	}
	fe := verrs[0]
	name := jsonNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.ActualTag() {
	case "max":
		return newError("Field '%s' must be at most %s characters.", name, fe.Param())
	case "required":
		return newError("Field '%s' is required.", name)
	default:
		return newError("Field '%s' is invalid.", name)
	}
}
