package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// AttachmentRepository persists uploaded file records.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.Attachment, error)
}

type attachmentRepository struct {
	db *gorm.DB
}

// NewAttachmentRepository constructs the attachment repository.
func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepository{db: db}
}

func (r *attachmentRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepository) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.Attachment, error) {
	query := r.db.WithContext(ctx)

	switch entityType {
	case models.EntityProject:
		query = query.Where("project_id = ?", entityID)
	case models.EntitySubproject:
		query = query.Where("subproject_id = ?", entityID)
	case models.EntityActivity:
		query = query.Where("activity_id = ?", entityID)
	default:
		return []models.Attachment{}, nil
	}

	var attachments []models.Attachment
	err := query.Order("id ASC").Find(&attachments).Error
	return attachments, err
}
