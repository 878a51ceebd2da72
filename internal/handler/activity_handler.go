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

// ActivityHandler handles activity routes and the nested comment collection.
type ActivityHandler struct {
	activities service.ActivityService
	comments   service.ActivityCommentService
	logger     zerolog.Logger
}

// NewActivityHandler constructs an activity handler.
func NewActivityHandler(activities service.ActivityService, comments service.ActivityCommentService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		activities: activities,
		comments:   comments,
		logger:     logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register wires activity routes.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/delayed", h.listDelayed)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/comments", h.listComments)
	router.Post("/:id/comments", h.addComment)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	subprojectID, err := parseQueryUint(c, "subproject")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subproject id")
	}
	responsibleID, err := parseQueryUint(c, "responsible")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid responsible id")
	}

	var (
		activities []dto.ActivityResponse
		listErr    error
	)
	switch {
	case subprojectID != nil:
		activities, listErr = h.activities.ListBySubproject(c.Context(), *subprojectID)
	case responsibleID != nil:
		activities, listErr = h.activities.ListByResponsible(c.Context(), *responsibleID)
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "subproject or responsible filter required")
	}
	if listErr != nil {
		h.logger.Error().Err(listErr).Msg("failed to list activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activities")
	}

	return utils.SendSuccess(c, "activities", activities)
}

func (h *ActivityHandler) listDelayed(c *fiber.Ctx) error {
	activities, err := h.activities.ListDelayed(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list delayed activities")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list delayed activities")
	}

	return utils.SendSuccess(c, "delayed activities", activities)
}

func (h *ActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.ActivityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.activities.Create(c.Context(), payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to create activity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created", activity)
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	activity, err := h.activities.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrActivityNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "activity not found")
		}
		h.logger.Error().Err(err).Msg("failed to load activity")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load activity")
	}

	return utils.SendSuccess(c, "activity", activity)
}

func (h *ActivityHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	var payload dto.ActivityUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.activities.Update(c.Context(), id, payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to update activity")
	}

	return utils.SendSuccess(c, "activity updated", activity)
}

func (h *ActivityHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	if err := h.activities.Delete(c.Context(), id, actorID(c)); err != nil {
		return h.mutationError(c, err, "failed to delete activity")
	}

	return utils.SendSuccess(c, "activity deleted", nil)
}

func (h *ActivityHandler) listComments(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	comments, err := h.comments.ListByActivity(c.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list comments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list comments")
	}

	return utils.SendSuccess(c, "comments", comments)
}

func (h *ActivityHandler) addComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid activity id")
	}

	userID, ok := requireActor(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var payload dto.ActivityCommentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	comment, err := h.comments.Add(c.Context(), id, payload, userID)
	if err != nil {
		return h.mutationError(c, err, "failed to post comment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment posted", comment)
}

func (h *ActivityHandler) mutationError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity not found")
	case errors.Is(err, service.ErrSubprojectNotFound):
		return utils.SendError(c, fiber.StatusBadRequest, "parent subproject not found")
	case errors.Is(err, service.ErrInvalidStatus):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid status")
	case errors.Is(err, service.ErrEmptyContent):
		return utils.SendError(c, fiber.StatusBadRequest, "content must not be empty")
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid data")
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}
