// Package services implements the project operations on top of the repositories.
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/celestiaorg/intakeflow/internal/db"
	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/db/repos"
	"github.com/celestiaorg/intakeflow/internal/logger"
	"github.com/celestiaorg/intakeflow/internal/validation"
)

// Project handles project-related operations
type Project struct {
	repo *repos.ProjectRepository
}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(repo *repos.ProjectRepository) *Project {
	return &Project{
		repo: repo,
	}
}

// List retrieves all projects ordered by portfolio, then start date
func (s *Project) List(ctx context.Context) ([]models.Project, error) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get retrieves a project by id
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, id, "")
	}
	return project, nil
}

// Create validates the input and inserts a new project
func (s *Project) Create(ctx context.Context, input validation.ProjectInput) (*models.Project, error) {
	normalized, err := validation.ValidateCreate(input)
	if err != nil {
		return nil, err
	}

	project := &models.Project{}
	normalized.Apply(project)
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, mapStoreError(err, 0, project.PlannerTaskID)
	}

	logger.InfoWithFields("Project created", map[string]interface{}{
		"project_id":      project.ID,
		"planner_task_id": project.PlannerTaskID,
		"portfolio":       project.Portfolio,
	})
	return project, nil
}

// Update validates the input and overwrites every mutable field of the project
func (s *Project) Update(ctx context.Context, id uint, input validation.ProjectInput) (*models.Project, error) {
	normalized, err := validation.ValidateFullUpdate(input)
	if err != nil {
		return nil, err
	}

	project := &models.Project{ID: id}
	normalized.Apply(project)
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, mapStoreError(err, id, project.PlannerTaskID)
	}

	logger.InfoWithFields("Project updated", map[string]interface{}{
		"project_id":      id,
		"planner_task_id": project.PlannerTaskID,
		"status":          project.Status,
	})
	return s.Get(ctx, id)
}

// UpdateStatus validates and stores a new status, leaving other fields untouched
func (s *Project) UpdateStatus(ctx context.Context, id uint, input validation.StatusInput) (*models.Project, error) {
	status, err := validation.ValidateStatusUpdate(input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, mapStoreError(err, id, "")
	}

	logger.InfoWithFields("Project status updated", map[string]interface{}{
		"project_id": id,
		"status":     status,
	})
	return s.Get(ctx, id)
}

// Delete removes a project permanently
func (s *Project) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapStoreError(err, id, "")
	}
	logger.InfoWithFields("Project deleted", map[string]interface{}{
		"project_id": id,
	})
	return nil
}

// Count returns the number of stored projects
func (s *Project) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// mapStoreError turns repository errors into the service error kinds
func mapStoreError(err error, id uint, plannerTaskID string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{ID: id}
	case db.IsDuplicateKeyError(err):
		return &ConflictError{PlannerTaskID: plannerTaskID}
	default:
		return fmt.Errorf("store error: %w", err)
	}
}
