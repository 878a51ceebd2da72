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

// ErrActivityNotFound indicates the requested activity does not exist.
var ErrActivityNotFound = errors.New("activity not found")

// ActivityService exposes activity use cases.
type ActivityService interface {
	Create(ctx context.Context, payload dto.ActivityCreateRequest, actorID *uint) (dto.ActivityResponse, error)
	Get(ctx context.Context, id uint) (dto.ActivityResponse, error)
	Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest, actorID *uint) (dto.ActivityResponse, error)
	Delete(ctx context.Context, id uint, actorID *uint) error
	ListBySubproject(ctx context.Context, subprojectID uint) ([]dto.ActivityResponse, error)
	ListByResponsible(ctx context.Context, userID uint) ([]dto.ActivityResponse, error)
	ListDelayed(ctx context.Context) ([]dto.ActivityResponse, error)
}

type activityService struct {
	repo        repository.ActivityRepository
	subprojects repository.SubprojectRepository
	audit       AuditService
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewActivityService builds a new activity service.
func NewActivityService(repo repository.ActivityRepository, subprojects repository.SubprojectRepository, audit AuditService, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:        repo,
		subprojects: subprojects,
		audit:       audit,
		validator:   validate,
		logger:      logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) Create(ctx context.Context, payload dto.ActivityCreateRequest, actorID *uint) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ActivityResponse{}, err
	}

	status := models.Status(payload.Status)
	if !status.Valid() {
		return dto.ActivityResponse{}, ErrInvalidStatus
	}

	if _, err := s.subprojects.GetByID(ctx, payload.SubprojectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrSubprojectNotFound
		}
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		Name:          payload.Name,
		Description:   payload.Description,
		Status:        status,
		SubprojectID:  payload.SubprojectID,
		ResponsibleID: payload.ResponsibleID,
		StartDate:     payload.StartDate,
		DueDate:       payload.DueDate,
		SLA:           payload.SLA,
		Checklist:     payload.Checklist,
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	if err := s.audit.RecordCreate(ctx, models.EntityActivity, activity.ID, activity, actorID); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Msg("activity created")

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Get(ctx context.Context, id uint) (dto.ActivityResponse, error) {
	activity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	return dto.NewActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, id uint, payload dto.ActivityUpdateRequest, actorID *uint) (dto.ActivityResponse, error) {
	patch := repository.ActivityPatch{
		Name:          payload.Name,
		Description:   payload.Description,
		SubprojectID:  payload.SubprojectID,
		ResponsibleID: payload.ResponsibleID,
		StartDate:     payload.StartDate,
		DueDate:       payload.DueDate,
		SLA:           payload.SLA,
		Checklist:     payload.Checklist,
	}

	if payload.Status != nil {
		status := models.Status(*payload.Status)
		if !status.Valid() {
			return dto.ActivityResponse{}, ErrInvalidStatus
		}
		patch.Status = &status
	}

	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrActivityNotFound
		}
		return dto.ActivityResponse{}, err
	}

	if err := s.audit.RecordUpdate(ctx, models.EntityActivity, id, before, updated, actorID); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", id).Msg("activity updated")

	return dto.NewActivityResponse(updated), nil
}

func (s *activityService) Delete(ctx context.Context, id uint, actorID *uint) error {
	before, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrActivityNotFound
		}
		return err
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrActivityNotFound
	}

	if err := s.audit.RecordDelete(ctx, models.EntityActivity, id, before, actorID); err != nil {
		return err
	}

	s.logger.Info().Uint("activity_id", id).Msg("activity deleted")
	return nil
}

func (s *activityService) ListBySubproject(ctx context.Context, subprojectID uint) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.ListBySubproject(ctx, subprojectID)
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponseSlice(activities), nil
}

func (s *activityService) ListByResponsible(ctx context.Context, userID uint) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.ListByResponsible(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponseSlice(activities), nil
}

func (s *activityService) ListDelayed(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.repo.ListDelayed(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewActivityResponseSlice(activities), nil
}
