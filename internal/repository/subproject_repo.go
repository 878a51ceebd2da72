package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// SubprojectPatch carries the fields of a partial subproject update.
type SubprojectPatch struct {
	Name          *string
	Description   *string
	Status        *models.Status
	ProjectID     *uint
	ResponsibleID *uint
	StartDate     *time.Time
	EndDate       *time.Time
}

// SubprojectRepository persists subprojects.
type SubprojectRepository interface {
	Create(ctx context.Context, subproject *models.Subproject) error
	GetByID(ctx context.Context, id uint) (models.Subproject, error)
	Update(ctx context.Context, id uint, patch SubprojectPatch) (models.Subproject, error)
	Delete(ctx context.Context, id uint) (bool, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Subproject, error)
	ListByResponsible(ctx context.Context, userID uint) ([]models.Subproject, error)
}

type subprojectRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSubprojectRepository constructs the subproject repository.
func NewSubprojectRepository(db *gorm.DB) SubprojectRepository {
	return &subprojectRepository{db: db, now: time.Now}
}

func (r *subprojectRepository) Create(ctx context.Context, subproject *models.Subproject) error {
	now := r.now()
	subproject.StatusUpdatedAt = now
	subproject.CreatedAt = now
	subproject.UpdatedAt = now
	return r.db.WithContext(ctx).Create(subproject).Error
}

func (r *subprojectRepository) GetByID(ctx context.Context, id uint) (models.Subproject, error) {
	var subproject models.Subproject
	err := r.db.WithContext(ctx).First(&subproject, id).Error
	return subproject, err
}

func (r *subprojectRepository) Update(ctx context.Context, id uint, patch SubprojectPatch) (models.Subproject, error) {
	var updated models.Subproject
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Subproject
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		now := r.now()
		if patch.Name != nil {
			existing.Name = *patch.Name
		}
		if patch.Description != nil {
			existing.Description = patch.Description
		}
		if patch.Status != nil && *patch.Status != existing.Status {
			existing.Status = *patch.Status
			existing.StatusUpdatedAt = now
		}
		if patch.ProjectID != nil {
			existing.ProjectID = *patch.ProjectID
		}
		if patch.ResponsibleID != nil {
			existing.ResponsibleID = patch.ResponsibleID
		}
		if patch.StartDate != nil {
			existing.StartDate = patch.StartDate
		}
		if patch.EndDate != nil {
			existing.EndDate = patch.EndDate
		}
		existing.UpdatedAt = now

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = existing
		return nil
	})
	return updated, err
}

func (r *subprojectRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Subproject{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *subprojectRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Subproject, error) {
	var subprojects []models.Subproject
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&subprojects).Error
	return subprojects, err
}

func (r *subprojectRepository) ListByResponsible(ctx context.Context, userID uint) ([]models.Subproject, error) {
	var subprojects []models.Subproject
	err := r.db.WithContext(ctx).Where("responsible_id = ?", userID).Order("id ASC").Find(&subprojects).Error
	return subprojects, err
}
