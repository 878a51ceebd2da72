package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// ContactService manages stakeholder contacts attached to a project.
type ContactService interface {
	Add(ctx context.Context, projectID uint, payload dto.ContactCreateRequest) (models.Contact, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Contact, error)
}

type contactService struct {
	repo      repository.ContactRepository
	projects  repository.ProjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewContactService builds a new contact service.
func NewContactService(repo repository.ContactRepository, projects repository.ProjectRepository, validate *validator.Validate, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:      repo,
		projects:  projects,
		validator: validate,
		logger:    logger.With().Str("component", "contact_service").Logger(),
	}
}

func (s *contactService) Add(ctx context.Context, projectID uint, payload dto.ContactCreateRequest) (models.Contact, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.Contact{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contact{}, ErrProjectNotFound
		}
		return models.Contact{}, err
	}

	contact := models.Contact{
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Role:      payload.Role,
		Notes:     payload.Notes,
		ProjectID: projectID,
	}

	if err := s.repo.Create(ctx, &contact); err != nil {
		return models.Contact{}, err
	}

	s.logger.Info().Uint("contact_id", contact.ID).Uint("project_id", projectID).Msg("contact added")
	return contact, nil
}

func (s *contactService) ListByProject(ctx context.Context, projectID uint) ([]models.Contact, error) {
	return s.repo.ListByProject(ctx, projectID)
}
