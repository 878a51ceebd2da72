package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
)

// AuditService appends one immutable audit row per mutation. Snapshots are
// marshalled at the recorder boundary so that later mutation of the live
// entity cannot alter a row that was already written. Persistence errors
// propagate to the caller; a mutation must never report success while its
// audit row silently failed.
type AuditService interface {
	RecordCreate(ctx context.Context, entityType string, entityID uint, after interface{}, actorID *uint) error
	RecordUpdate(ctx context.Context, entityType string, entityID uint, before, after interface{}, actorID *uint) error
	RecordDelete(ctx context.Context, entityType string, entityID uint, before interface{}, actorID *uint) error
	ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error)
}

type auditService struct {
	repo   repository.AuditLogRepository
	logger zerolog.Logger
}

// NewAuditService builds the audit recorder.
func NewAuditService(repo repository.AuditLogRepository, logger zerolog.Logger) AuditService {
	return &auditService{
		repo:   repo,
		logger: logger.With().Str("component", "audit_service").Logger(),
	}
}

func (s *auditService) RecordCreate(ctx context.Context, entityType string, entityID uint, after interface{}, actorID *uint) error {
	return s.record(ctx, entityType, entityID, models.AuditActionCreate, nil, after, actorID)
}

func (s *auditService) RecordUpdate(ctx context.Context, entityType string, entityID uint, before, after interface{}, actorID *uint) error {
	return s.record(ctx, entityType, entityID, models.AuditActionUpdate, before, after, actorID)
}

func (s *auditService) RecordDelete(ctx context.Context, entityType string, entityID uint, before interface{}, actorID *uint) error {
	return s.record(ctx, entityType, entityID, models.AuditActionDelete, before, nil, actorID)
}

func (s *auditService) ListByEntity(ctx context.Context, entityType string, entityID uint) ([]models.AuditLog, error) {
	return s.repo.ListByEntity(ctx, entityType, entityID)
}

func (s *auditService) record(ctx context.Context, entityType string, entityID uint, action string, before, after interface{}, actorID *uint) error {
	beforeSnapshot, err := snapshot(before)
	if err != nil {
		return fmt.Errorf("failed to snapshot previous state: %w", err)
	}

	afterSnapshot, err := snapshot(after)
	if err != nil {
		return fmt.Errorf("failed to snapshot new state: %w", err)
	}

	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Before:     beforeSnapshot,
		After:      afterSnapshot,
		UserID:     actorID,
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	s.logger.Debug().
		Str("entity_type", entityType).
		Uint("entity_id", entityID).
		Str("action", action).
		Msg("audit entry recorded")

	return nil
}

// snapshot deep-copies the value into a detached JSON document. A nil value
// yields a nil column, which is how create rows omit "before" and delete rows
// omit "after".
func snapshot(value interface{}) (datatypes.JSON, error) {
	if value == nil {
		return nil, nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	return datatypes.JSON(payload), nil
}
