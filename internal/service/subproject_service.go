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

// ErrSubprojectNotFound indicates the requested subproject does not exist.
var ErrSubprojectNotFound = errors.New("subproject not found")

// SubprojectService exposes subproject use cases.
type SubprojectService interface {
	Create(ctx context.Context, payload dto.SubprojectCreateRequest, actorID *uint) (dto.SubprojectResponse, error)
	Get(ctx context.Context, id uint) (dto.SubprojectResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubprojectUpdateRequest, actorID *uint) (dto.SubprojectResponse, error)
	Delete(ctx context.Context, id uint, actorID *uint) error
	ListByProject(ctx context.Context, projectID uint) ([]dto.SubprojectResponse, error)
	ListByResponsible(ctx context.Context, userID uint) ([]dto.SubprojectResponse, error)
}

type subprojectService struct {
	repo      repository.SubprojectRepository
	projects  repository.ProjectRepository
	audit     AuditService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubprojectService builds a new subproject service.
func NewSubprojectService(repo repository.SubprojectRepository, projects repository.ProjectRepository, audit AuditService, validate *validator.Validate, logger zerolog.Logger) SubprojectService {
	return &subprojectService{
		repo:      repo,
		projects:  projects,
		audit:     audit,
		validator: validate,
		logger:    logger.With().Str("component", "subproject_service").Logger(),
	}
}

func (s *subprojectService) Create(ctx context.Context, payload dto.SubprojectCreateRequest, actorID *uint) (dto.SubprojectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubprojectResponse{}, err
	}

	status := models.Status(payload.Status)
	if !status.Valid() {
		return dto.SubprojectResponse{}, ErrInvalidStatus
	}

	if _, err := s.projects.GetByID(ctx, payload.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubprojectResponse{}, ErrProjectNotFound
		}
		return dto.SubprojectResponse{}, err
	}

	subproject := models.Subproject{
		Name:          payload.Name,
		Description:   payload.Description,
		Status:        status,
		ProjectID:     payload.ProjectID,
		ResponsibleID: payload.ResponsibleID,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
	}

	if err := s.repo.Create(ctx, &subproject); err != nil {
		return dto.SubprojectResponse{}, err
	}

	if err := s.audit.RecordCreate(ctx, models.EntitySubproject, subproject.ID, subproject, actorID); err != nil {
		return dto.SubprojectResponse{}, err
	}

	s.logger.Info().Uint("subproject_id", subproject.ID).Msg("subproject created")

	return dto.NewSubprojectResponse(subproject), nil
}

func (s *subprojectService) Get(ctx context.Context, id uint) (dto.SubprojectResponse, error) {
	subproject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubprojectResponse{}, ErrSubprojectNotFound
		}
		return dto.SubprojectResponse{}, err
	}

	return dto.NewSubprojectResponse(subproject), nil
}

func (s *subprojectService) Update(ctx context.Context, id uint, payload dto.SubprojectUpdateRequest, actorID *uint) (dto.SubprojectResponse, error) {
	patch := repository.SubprojectPatch{
		Name:          payload.Name,
		Description:   payload.Description,
		ProjectID:     payload.ProjectID,
		ResponsibleID: payload.ResponsibleID,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
	}

	if payload.Status != nil {
		status := models.Status(*payload.Status)
		if !status.Valid() {
			return dto.SubprojectResponse{}, ErrInvalidStatus
		}
		patch.Status = &status
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubprojectResponse{}, ErrSubprojectNotFound
		}
		return dto.SubprojectResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubprojectResponse{}, ErrSubprojectNotFound
		}
		return dto.SubprojectResponse{}, err
	}

	if err := s.audit.RecordUpdate(ctx, models.EntitySubproject, id, before, updated, actorID); err != nil {
		return dto.SubprojectResponse{}, err
	}

	s.logger.Info().Uint("subproject_id", id).Msg("subproject updated")

	return dto.NewSubprojectResponse(updated), nil
}

func (s *subprojectService) Delete(ctx context.Context, id uint, actorID *uint) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubprojectNotFound
		}
		return err
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrSubprojectNotFound
	}

	if err := s.audit.RecordDelete(ctx, models.EntitySubproject, id, before, actorID); err != nil {
		return err
	}

	s.logger.Info().Uint("subproject_id", id).Msg("subproject deleted")
	return nil
}

func (s *subprojectService) ListByProject(ctx context.Context, projectID uint) ([]dto.SubprojectResponse, error) {
	subprojects, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubprojectResponseSlice(subprojects), nil
}

func (s *subprojectService) ListByResponsible(ctx context.Context, userID uint) ([]dto.SubprojectResponse, error) {
	subprojects, err := s.repo.ListByResponsible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewSubprojectResponseSlice(subprojects), nil
}
