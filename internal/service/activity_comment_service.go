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

// ActivityCommentService manages discussion entries on an activity.
type ActivityCommentService interface {
	Add(ctx context.Context, activityID uint, payload dto.ActivityCommentRequest, userID uint) (models.ActivityComment, error)
	ListByActivity(ctx context.Context, activityID uint) ([]models.ActivityComment, error)
}

type activityCommentService struct {
	repo       repository.ActivityCommentRepository
	activities repository.ActivityRepository
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewActivityCommentService builds a new activity comment service.
func NewActivityCommentService(repo repository.ActivityCommentRepository, activities repository.ActivityRepository, validate *validator.Validate, logger zerolog.Logger) ActivityCommentService {
	return &activityCommentService{
		repo:       repo,
		activities: activities,
		validator:  validate,
		sanitizer:  bluemonday.UGCPolicy(),
		logger:     logger.With().Str("component", "activity_comment_service").Logger(),
	}
}

func (s *activityCommentService) Add(ctx context.Context, activityID uint, payload dto.ActivityCommentRequest, userID uint) (models.ActivityComment, error) {
	if err := s.validator.Struct(payload); err != nil {
		return models.ActivityComment{}, err
	}

	if _, err := s.activities.GetByID(ctx, activityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ActivityComment{}, ErrActivityNotFound
		}
		return models.ActivityComment{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return models.ActivityComment{}, ErrEmptyContent
	}

	comment := models.ActivityComment{
		ActivityID: activityID,
		Content:    content,
		UserID:     userID,
	}

	if err := s.repo.Create(ctx, &comment); err != nil {
		return models.ActivityComment{}, err
	}

	s.logger.Info().Uint("comment_id", comment.ID).Uint("activity_id", activityID).Msg("activity comment added")
	return comment, nil
}

func (s *activityCommentService) ListByActivity(ctx context.Context, activityID uint) ([]models.ActivityComment, error) {
	return s.repo.ListByActivity(ctx, activityID)
}
