package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ActivityPatch carries the fields of a partial activity update. IsDelayed is
// only overwritten when explicitly supplied.
type ActivityPatch struct {
	Name          *string
	Description   *string
	Status        *models.Status
	SubprojectID  *uint
	ResponsibleID *uint
	StartDate     *time.Time
	DueDate       *time.Time
	SLA           *int
	IsDelayed     *bool
	Checklist     *[]models.ChecklistItem
}

// ActivityRepository persists activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (models.Activity, error)
	Update(ctx context.Context, id uint, patch ActivityPatch) (models.Activity, error)
	Delete(ctx context.Context, id uint) (bool, error)
	ListBySubproject(ctx context.Context, subprojectID uint) ([]models.Activity, error)
	ListByResponsible(ctx context.Context, userID uint) ([]models.Activity, error)
	ListDelayed(ctx context.Context) ([]models.Activity, error)
}

type activityRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewActivityRepository constructs the activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db, now: time.Now}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	now := r.now()
	activity.StatusUpdatedAt = now
	activity.IsDelayed = false
	activity.CreatedAt = now
	activity.UpdatedAt = now
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).First(&activity, id).Error
	return activity, err
}

func (r *activityRepository) Update(ctx context.Context, id uint, patch ActivityPatch) (models.Activity, error) {
	var updated models.Activity
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Activity
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
		if patch.SubprojectID != nil {
			existing.SubprojectID = *patch.SubprojectID
		}
		if patch.ResponsibleID != nil {
			existing.ResponsibleID = patch.ResponsibleID
		}
		if patch.StartDate != nil {
			existing.StartDate = patch.StartDate
		}
		if patch.DueDate != nil {
			existing.DueDate = patch.DueDate
		}
		if patch.SLA != nil {
			existing.SLA = patch.SLA
		}
		if patch.IsDelayed != nil {
			existing.IsDelayed = *patch.IsDelayed
		}
		if patch.Checklist != nil {
			existing.Checklist = datatypes.NewJSONSlice(*patch.Checklist)
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

func (r *activityRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Activity{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *activityRepository) ListBySubproject(ctx context.Context, subprojectID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Where("subproject_id = ?", subprojectID).Order("id ASC").Find(&activities).Error
	return activities, err
}

func (r *activityRepository) ListByResponsible(ctx context.Context, userID uint) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Where("responsible_id = ?", userID).Order("id ASC").Find(&activities).Error
	return activities, err
}

func (r *activityRepository) ListDelayed(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.WithContext(ctx).Where("is_delayed = ?", true).Order("id ASC").Find(&activities).Error
	return activities, err
}
