package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Handlers map them to status codes.
var (
	// ErrNotFound is returned when the referenced project does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write would break plannerTaskId uniqueness
	ErrConflict = errors.New("conflict")
)

// ConflictError names the plannerTaskId another project already holds
type ConflictError struct {
	PlannerTaskID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("A project with PlannerTaskId '%s' already exists.", e.PlannerTaskID)
}

// Is lets errors.Is(err, ErrConflict) match a *ConflictError
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NotFoundError names the missing project id
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Project %d not found.", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match a *NotFoundError
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
