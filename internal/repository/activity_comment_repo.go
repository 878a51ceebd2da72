package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ActivityCommentRepository persists activity comments, listed oldest-first.
type ActivityCommentRepository interface {
	Create(ctx context.Context, comment *models.ActivityComment) error
	ListByActivity(ctx context.Context, activityID uint) ([]models.ActivityComment, error)
}

type activityCommentRepository struct {
	db *gorm.DB
}

// NewActivityCommentRepository constructs the activity comment repository.
func NewActivityCommentRepository(db *gorm.DB) ActivityCommentRepository {
	return &activityCommentRepository{db: db}
}

func (r *activityCommentRepository) Create(ctx context.Context, comment *models.ActivityComment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *activityCommentRepository) ListByActivity(ctx context.Context, activityID uint) ([]models.ActivityComment, error) {
	var comments []models.ActivityComment
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
