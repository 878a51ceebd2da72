package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// AuditLogRepository appends and reads the immutable audit trail. There is
// deliberately no update or delete operation.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository constructs the audit log repository.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *auditLogRepository) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
