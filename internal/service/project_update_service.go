package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// ErrEmptyContent indicates a note whose content is blank after sanitizing.
var ErrEmptyContent = errors.New("content must not be empty")

// ProjectUpdateService manages dated progress notes on a project. Content is
// user-authored rich text and is sanitized before it is stored.
type ProjectUpdateService interface {
	Add(ctx context.Context, projectID uint, payload dto.ProjectUpdateNoteRequest, userID uint) (models.ProjectUpdate, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error)
}

type projectUpdateService struct {
	repo      repository.ProjectUpdateRepository
	projects  repository.ProjectRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProjectUpdateService builds a new project update service.
func NewProjectUpdateService(repo repository.ProjectUpdateRepository, projects repository.ProjectRepository, validate *validator.Validate, logger zerolog.Logger) ProjectUpdateService {
	return &projectUpdateService{
		repo:      repo,
		projects:  projects,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		logger:    logger.With().Str("component", "project_update_service").Logger(),
	}
}

func (s *projectUpdateService) Add(ctx context.Context, projectID uint, payload dto.ProjectUpdateNoteRequest, userID uint) (models.ProjectUpdate, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ProjectUpdate{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProjectUpdate{}, ErrProjectNotFound
		}
		return models.ProjectUpdate{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return models.ProjectUpdate{}, ErrEmptyContent
	}

	update := models.ProjectUpdate{
		ProjectID: projectID,
		Content:   content,
		UserID:    userID,
	}

	if err := s.repo.Create(ctx, &update); err != nil {
		return models.ProjectUpdate{}, err
	}

	s.logger.Info().Uint("update_id", update.ID).Uint("project_id", projectID).Msg("project update posted")
	return update, nil
}

func (s *projectUpdateService) ListByProject(ctx context.Context, projectID uint) ([]models.ProjectUpdate, error) {
	return s.repo.ListByProject(ctx, projectID)
}
