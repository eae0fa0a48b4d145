// Package types holds the request and response bodies exchanged over the API.
package types

import "github.com/celestiaorg/intakeflow/internal/validation"

// ProjectRequest is the body of a create or full-update call.
// Status is ignored on create.
// swagger:model
// Example: {"name":"Payroll","plannerTaskId":"PLN-042","portfolio":"HR","status":"Approved","startDate":"2024-01-01","endDate":"2024-06-30"}
type ProjectRequest struct {
	// Display name of the project
	Name string `json:"name"`

	// Identifier of the linked planner task, unique across projects
	PlannerTaskID string `json:"plannerTaskId"`

	// Portfolio grouping, defaults to General
	Portfolio string `json:"portfolio,omitempty"`

	// Lifecycle status, required on full update
	Status string `json:"status,omitempty"`

	// Optional start date (RFC 3339 or YYYY-MM-DD)
	StartDate string `json:"startDate,omitempty"`

	// Optional end date, not earlier than the start date
	EndDate string `json:"endDate,omitempty"`
}

// Input converts the request into the validation input
func (r ProjectRequest) Input() validation.ProjectInput {
	return validation.ProjectInput{
		Name:          r.Name,
		PlannerTaskID: r.PlannerTaskID,
		Portfolio:     r.Portfolio,
		Status:        r.Status,
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
	}
}

// StatusRequest is the body of a status-only update
// swagger:model
// Example: {"status":"InProgress"}
type StatusRequest struct {
	Status string `json:"status"`
}

// Input converts the request into the validation input
func (r StatusRequest) Input() validation.StatusInput {
	return validation.StatusInput{Status: r.Status}
}

// ErrorResponse is the body of every JSON error reply
// swagger:model
// Example: {"error":"Project 7 not found."}
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status string `json:"status"`
}
