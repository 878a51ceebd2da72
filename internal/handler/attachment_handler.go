package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// AttachmentHandler handles file upload and attachment listing routes.
type AttachmentHandler struct {
	attachments service.AttachmentService
	logger      zerolog.Logger
}

// NewAttachmentHandler constructs an attachment handler.
func NewAttachmentHandler(attachments service.AttachmentService, logger zerolog.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		attachments: attachments,
		logger:      logger.With().Str("component", "attachment_handler").Logger(),
	}
}

// Register wires attachment routes.
func (h *AttachmentHandler) Register(router fiber.Router) {
	router.Post("", h.upload)
	router.Get("", h.list)
}

func (h *AttachmentHandler) upload(c *fiber.Ctx) error {
	userID, ok := requireActor(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file is required")
	}

	target, err := attachmentTarget(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	attachment, err := h.attachments.Upload(c.Context(), file, target, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "unsupported file type")
		case errors.Is(err, service.ErrAttachmentTarget):
			return utils.SendError(c, fiber.StatusBadRequest, "attachment must reference a project, subproject or activity")
		default:
			h.logger.Error().Err(err).Msg("failed to upload attachment")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to upload attachment")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attachment uploaded", attachment)
}

func (h *AttachmentHandler) list(c *fiber.Ctx) error {
	entityType := c.Query("entity")
	entityID, err := parseQueryUint(c, "entity_id")
	if err != nil || entityType == "" || entityID == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "entity and entity_id are required")
	}

	attachments, err := h.attachments.ListByEntity(c.Context(), entityType, *entityID)
	if err != nil {
		if errors.Is(err, service.ErrAttachmentTarget) {
			return utils.SendError(c, fiber.StatusBadRequest, "unknown entity type")
		}
		h.logger.Error().Err(err).Msg("failed to list attachments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list attachments")
	}

	return utils.SendSuccess(c, "attachments", attachments)
}

func attachmentTarget(c *fiber.Ctx) (service.AttachmentTarget, error) {
	var target service.AttachmentTarget

	projectID, err := parseFormUint(c, "project_id")
	if err != nil {
		return target, errors.New("invalid project_id")
	}
	subprojectID, err := parseFormUint(c, "subproject_id")
	if err != nil {
		return target, errors.New("invalid subproject_id")
	}
	activityID, err := parseFormUint(c, "activity_id")
	if err != nil {
		return target, errors.New("invalid activity_id")
	}

	target.ProjectID = projectID
	target.SubprojectID = subprojectID
	target.ActivityID = activityID
	return target, nil
}
