package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// ErrEventNotFound indicates the requested event does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrInvalidDateRange indicates an event or query whose end precedes its start.
var ErrInvalidDateRange = errors.New("end date must not precede start date")

// EventService exposes calendar event use cases.
type EventService interface {
	Create(ctx context.Context, payload dto.EventCreateRequest, createdBy uint) (dto.EventResponse, error)
	Get(ctx context.Context, id uint) (dto.EventResponse, error)
	Update(ctx context.Context, id uint, payload dto.EventUpdateRequest) (dto.EventResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]dto.EventResponse, error)
	ListByProject(ctx context.Context, projectID uint) ([]dto.EventResponse, error)
	ListBySubproject(ctx context.Context, subprojectID uint) ([]dto.EventResponse, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]dto.EventResponse, error)
}

type eventService struct {
	repo      repository.EventRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewEventService builds a new event service.
func NewEventService(repo repository.EventRepository, validate *validator.Validate, logger zerolog.Logger) EventService {
	return &eventService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "event_service").Logger(),
	}
}

func (s *eventService) Create(ctx context.Context, payload dto.EventCreateRequest, createdBy uint) (dto.EventResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EventResponse{}, err
	}

	if payload.EndDate.Before(payload.StartDate) {
		return dto.EventResponse{}, ErrInvalidDateRange
	}

	event := models.Event{
		Title:        payload.Title,
		Description:  payload.Description,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		Location:     payload.Location,
		ProjectID:    payload.ProjectID,
		SubprojectID: payload.SubprojectID,
		CreatedBy:    createdBy,
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		return dto.EventResponse{}, err
	}

	s.logger.Info().Uint("event_id", event.ID).Msg("event created")
	return dto.NewEventResponse(event), nil
}

func (s *eventService) Get(ctx context.Context, id uint) (dto.EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	return dto.NewEventResponse(event), nil
}

func (s *eventService) Update(ctx context.Context, id uint, payload dto.EventUpdateRequest) (dto.EventResponse, error) {
	patch := repository.EventPatch{
		Title:        payload.Title,
		Description:  payload.Description,
		StartDate:    payload.StartDate,
		EndDate:      payload.EndDate,
		Location:     payload.Location,
		ProjectID:    payload.ProjectID,
		SubprojectID: payload.SubprojectID,
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EventResponse{}, ErrEventNotFound
		}
		return dto.EventResponse{}, err
	}

	s.logger.Info().Uint("event_id", id).Msg("event updated")
	return dto.NewEventResponse(updated), nil
}

func (s *eventService) Delete(ctx context.Context, id uint) error {
	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrEventNotFound
	}

	s.logger.Info().Uint("event_id", id).Msg("event deleted")
	return nil
}

func (s *eventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponseSlice(events), nil
}

func (s *eventService) ListByProject(ctx context.Context, projectID uint) ([]dto.EventResponse, error) {
	events, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponseSlice(events), nil
}

func (s *eventService) ListBySubproject(ctx context.Context, subprojectID uint) ([]dto.EventResponse, error) {
	events, err := s.repo.ListBySubproject(ctx, subprojectID)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponseSlice(events), nil
}

func (s *eventService) ListByDateRange(ctx context.Context, from, to time.Time) ([]dto.EventResponse, error) {
	if to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	events, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return dto.NewEventResponseSlice(events), nil
}
