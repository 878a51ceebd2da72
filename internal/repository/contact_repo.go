package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/models"
)

// ContactRepository persists project contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	ListByProject(ctx context.Context, projectID uint) ([]models.Contact, error)
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository constructs the contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("id ASC").Find(&contacts).Error
	return contacts, err
}
