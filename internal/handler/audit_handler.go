package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// AuditHandler exposes the audit trail of an entity.
type AuditHandler struct {
	audit  service.AuditService
	logger zerolog.Logger
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(audit service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		audit:  audit,
		logger: logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register wires audit routes.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/:entity/:id", h.listByEntity)
}

func (h *AuditHandler) listByEntity(c *fiber.Ctx) error {
	entityType := c.Params("entity")
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid entity id")
	}

	logs, err := h.audit.ListByEntity(c.Context(), entityType, id)
	if err != nil {
		h.logger.Error().Err(err).Str("entity", entityType).Msg("failed to list audit logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit logs")
	}

	return utils.SendSuccess(c, "audit logs", logs)
}
