package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// SubprojectHandler handles subproject routes.
type SubprojectHandler struct {
	subprojects service.SubprojectService
	logger      zerolog.Logger
}

// NewSubprojectHandler constructs a subproject handler.
func NewSubprojectHandler(subprojects service.SubprojectService, logger zerolog.Logger) *SubprojectHandler {
	return &SubprojectHandler{
		subprojects: subprojects,
		logger:      logger.With().Str("component", "subproject_handler").Logger(),
	}
}

// Register wires subproject routes.
func (h *SubprojectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *SubprojectHandler) list(c *fiber.Ctx) error {
	projectID, err := parseQueryUint(c, "project")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	responsibleID, err := parseQueryUint(c, "responsible")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid responsible id")
	}

	var (
		subprojects []dto.SubprojectResponse
		listErr     error
	)
	switch {
	case projectID != nil:
		subprojects, listErr = h.subprojects.ListByProject(c.Context(), *projectID)
	case responsibleID != nil:
		subprojects, listErr = h.subprojects.ListByResponsible(c.Context(), *responsibleID)
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "project or responsible filter required")
	}
	if listErr != nil {
		h.logger.Error().Err(listErr).Msg("failed to list subprojects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list subprojects")
	}

	return utils.SendSuccess(c, "subprojects", subprojects)
}

func (h *SubprojectHandler) create(c *fiber.Ctx) error {
	var payload dto.SubprojectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subproject, err := h.subprojects.Create(c.Context(), payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to create subproject")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "subproject created", subproject)
}

func (h *SubprojectHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subproject id")
	}

	subproject, err := h.subprojects.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSubprojectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "subproject not found")
		}
		h.logger.Error().Err(err).Msg("failed to load subproject")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load subproject")
	}

	return utils.SendSuccess(c, "subproject", subproject)
}

func (h *SubprojectHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subproject id")
	}

	var payload dto.SubprojectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	subproject, err := h.subprojects.Update(c.Context(), id, payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to update subproject")
	}

	return utils.SendSuccess(c, "subproject updated", subproject)
}

func (h *SubprojectHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subproject id")
	}

	if err := h.subprojects.Delete(c.Context(), id, actorID(c)); err != nil {
		return h.mutationError(c, err, "failed to delete subproject")
	}

	return utils.SendSuccess(c, "subproject deleted", nil)
}

func (h *SubprojectHandler) mutationError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrSubprojectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "subproject not found")
	case errors.Is(err, service.ErrProjectNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "parent project not found")
	case errors.Is(err, service.ErrInvalidStatus):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid status")
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid data")
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
