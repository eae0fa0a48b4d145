// Package repos provides database repository implementations
package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/celestiaorg/intakeflow/internal/db/models"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new instance of ProjectRepository
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Create inserts a new project. A planner task id that is already taken
// surfaces as the driver's unique violation, see db.IsDuplicateKeyError.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Get retrieves a project by ID from the database
func (r *ProjectRepository) Get(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves all projects ordered by portfolio, then start date with
// undated projects last, then id.
func (r *ProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Order(models.ProjectPortfolioField + " ASC").
		Order(models.ProjectStartDateField + " IS NULL").
		Order(models.ProjectStartDateField + " ASC").
		Order(models.ProjectIDField + " ASC").
		Find(&projects).Error
	return projects, err
}

// Update overwrites every mutable column of the project in a single
// statement. It returns gorm.ErrRecordNotFound when no row has the id.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where(models.ProjectIDField+" = ?", project.ID).
		Updates(map[string]interface{}{
			models.ProjectNameField:          project.Name,
			models.ProjectPlannerTaskIDField: project.PlannerTaskID,
			models.ProjectStatusField:        project.Status,
			models.ProjectPortfolioField:     project.Portfolio,
			models.ProjectStartDateField:     project.StartDate,
			models.ProjectEndDateField:       project.EndDate,
			"updated_at":                     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateStatus changes only the status column of a project
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uint, status models.ProjectStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Project{}).
		Where(models.ProjectIDField+" = ?", id).
		Updates(map[string]interface{}{
			models.ProjectStatusField: status,
			"updated_at":              time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete permanently removes a project by ID
func (r *ProjectRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns the number of stored projects
func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&count).Error
	return count, err
}
