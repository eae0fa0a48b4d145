package handlers

import "github.com/celestiaorg/intakeflow/internal/services"

// APIHandler is a handler for the API
type APIHandler struct {
	project *services.Project
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(project *services.Project) *APIHandler {
	return &APIHandler{
		project: project,
	}
}
