package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// EventPatch carries the fields of a partial event update.
type EventPatch struct {
	Title        *string
	Description  *string
	StartDate    *time.Time
	EndDate      *time.Time
	Location     *string
	ProjectID    *uint
	SubprojectID *uint
}

// EventRepository persists calendar events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (models.Event, error)
	Update(ctx context.Context, id uint, patch EventPatch) (models.Event, error)
	Delete(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]models.Event, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Event, error)
	ListBySubproject(ctx context.Context, subprojectID uint) ([]models.Event, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository constructs the event repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	return event, err
}

func (r *eventRepository) Update(ctx context.Context, id uint, patch EventPatch) (models.Event, error) {
	var updated models.Event
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Event
		if err := tx.First(&existing, id).Error; err != nil {
			return err
		}

		if patch.Title != nil {
			existing.Title = *patch.Title
		}
		if patch.Description != nil {
			existing.Description = patch.Description
		}
		if patch.StartDate != nil {
			existing.StartDate = *patch.StartDate
		}
		if patch.EndDate != nil {
			existing.EndDate = *patch.EndDate
		}
		if patch.Location != nil {
			existing.Location = patch.Location
		}
		if patch.ProjectID != nil {
			existing.ProjectID = patch.ProjectID
		}
		if patch.SubprojectID != nil {
			existing.SubprojectID = patch.SubprojectID
		}

		if err := tx.Save(&existing).Error; err != nil {
			return err
		}

		updated = existing
		return nil
	})
	return updated, err
}

func (r *eventRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Event{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *eventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Order("id ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&events).Error
	return events, err
}

func (r *eventRepository) ListBySubproject(ctx context.Context, subprojectID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).Where("subproject_id = ?", subprojectID).Order("id ASC").Find(&events).Error
	return events, err
}

// ListByDateRange matches on the event start date only, bounds inclusive.
func (r *eventRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("start_date >= ? AND start_date <= ?", from, to).
		Order("start_date ASC, id ASC").
		Find(&events).Error
	return events, err
}
