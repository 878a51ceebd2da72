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

// ErrProjectNotFound indicates the requested project does not exist.
var ErrProjectNotFound = errors.New("project not found")

// ErrInvalidStatus indicates a status label outside the known set.
var ErrInvalidStatus = errors.New("invalid status")

// ProjectListFilter narrows project listings; zero values mean "all".
type ProjectListFilter struct {
	Status        string
	ResponsibleID *uint
	Municipality  string
}

// ProjectService exposes project use cases. Every mutation is recorded by the
// audit service before the call returns; an audit failure fails the call.
type ProjectService interface {
	Create(ctx context.Context, payload dto.ProjectCreateRequest, actorID *uint) (dto.ProjectResponse, error)
	Get(ctx context.Context, id uint) (dto.ProjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest, actorID *uint) (dto.ProjectResponse, error)
	Delete(ctx context.Context, id uint, actorID *uint) error
	List(ctx context.Context, filter ProjectListFilter) ([]dto.ProjectResponse, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	audit     AuditService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProjectService builds a new project service.
func NewProjectService(repo repository.ProjectRepository, audit AuditService, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		audit:     audit,
		validator: validate,
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) Create(ctx context.Context, payload dto.ProjectCreateRequest, actorID *uint) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	status := models.Status(payload.Status)
	if !status.Valid() {
		return dto.ProjectResponse{}, ErrInvalidStatus
	}

	project := models.Project{
		Name:          payload.Name,
		Description:   payload.Description,
		Status:        status,
		Municipality:  payload.Municipality,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		ResponsibleID: payload.ResponsibleID,
		SLA:           payload.SLA,
		Checklist:     payload.Checklist,
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	if err := s.audit.RecordCreate(ctx, models.EntityProject, project.ID, project, actorID); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.logger.Info().Uint("project_id", project.ID).Msg("project created")

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Get(ctx context.Context, id uint) (dto.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest, actorID *uint) (dto.ProjectResponse, error) {
	patch := repository.ProjectPatch{
		Name:          payload.Name,
		Description:   payload.Description,
		Municipality:  payload.Municipality,
		StartDate:     payload.StartDate,
		EndDate:       payload.EndDate,
		ResponsibleID: payload.ResponsibleID,
		SLA:           payload.SLA,
		Checklist:     payload.Checklist,
	}

	if payload.Status != nil {
		status := models.Status(*payload.Status)
		if !status.Valid() {
			return dto.ProjectResponse{}, ErrInvalidStatus
		}
		patch.Status = &status
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	if err := s.audit.RecordUpdate(ctx, models.EntityProject, id, before, updated, actorID); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.logger.Info().Uint("project_id", id).Msg("project updated")

	return dto.NewProjectResponse(updated), nil
}

// Delete removes the project only; children are intentionally left in place
// at the storage layer.
func (s *projectService) Delete(ctx context.Context, id uint, actorID *uint) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrProjectNotFound
	}

	if err := s.audit.RecordDelete(ctx, models.EntityProject, id, before, actorID); err != nil {
		return err
	}

	s.logger.Info().Uint("project_id", id).Msg("project deleted")
	return nil
}

func (s *projectService) List(ctx context.Context, filter ProjectListFilter) ([]dto.ProjectResponse, error) {
	var (
		projects []models.Project
		err      error
	)

	switch {
	case filter.Status != "":
		projects, err = s.repo.ListByStatus(ctx, models.Status(filter.Status))
	case filter.ResponsibleID != nil:
		projects, err = s.repo.ListByResponsible(ctx, *filter.ResponsibleID)
	case filter.Municipality != "":
		projects, err = s.repo.ListByMunicipality(ctx, filter.Municipality)
	default:
		projects, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	return dto.NewProjectResponseSlice(projects), nil
}
