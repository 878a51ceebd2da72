package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ProjectUpdateRepository persists project progress notes. Listings are
// newest-first; Latest returns the most recent note for the daily-update check.
type ProjectUpdateRepository interface {
	Create(ctx context.Context, update *models.ProjectUpdate) error
	ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error)
	Latest(ctx context.Context, projectID uint) (*models.ProjectUpdate, error)
}

type projectUpdateRepository struct {
	db *gorm.DB
}

// NewProjectUpdateRepository constructs the project update repository.
func NewProjectUpdateRepository(db *gorm.DB) ProjectUpdateRepository {
	return &projectUpdateRepository{db: db}
}

func (r *projectUpdateRepository) Create(ctx context.Context, update *models.ProjectUpdate) error {
	return r.db.WithContext(ctx).Create(update).Error
}

func (r *projectUpdateRepository) ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error) {
	var updates []models.ProjectUpdate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&updates).Error
	return updates, err
}

// Latest returns nil without error when the project has no updates yet; the
// caller treats the absence as its own condition, not a failure.
func (r *projectUpdateRepository) Latest(ctx context.Context, projectID uint) (*models.ProjectUpdate, error) {
	var update models.ProjectUpdate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		First(&update).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &update, nil
}
