package handler

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// EventHandler handles calendar event routes.
type EventHandler struct {
	events service.EventService
	logger zerolog.Logger
}

// NewEventHandler constructs an event handler.
func NewEventHandler(events service.EventService, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger.With().Str("component", "event_handler").Logger(),
	}
}

// Register wires event routes.
func (h *EventHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *EventHandler) list(c *fiber.Ctx) error {
	projectID, err := parseQueryUint(c, "project")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	subprojectID, err := parseQueryUint(c, "subproject")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid subproject id")
	}

	fromRaw, toRaw := c.Query("from"), c.Query("to")

	var (
		events  []dto.EventResponse
		listErr error
	)
	switch {
	case fromRaw != "" || toRaw != "":
		from, to, parseErr := parseDateRange(fromRaw, toRaw)
		if parseErr != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "from and to must be RFC 3339 dates")
		}
		events, listErr = h.events.ListByDateRange(c.Context(), from, to)
	case projectID != nil:
		events, listErr = h.events.ListByProject(c.Context(), *projectID)
	case subprojectID != nil:
		events, listErr = h.events.ListBySubproject(c.Context(), *subprojectID)
	default:
		events, listErr = h.events.List(c.Context())
	}
	if listErr != nil {
		if errors.Is(listErr, service.ErrInvalidDateRange) {
			return utils.SendError(c, fiber.StatusBadRequest, "end date must not precede start date")
		}
		h.logger.Error().Err(listErr).Msg("failed to list events")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list events")
	}

	return utils.SendSuccess(c, "events", events)
}

func (h *EventHandler) create(c *fiber.Ctx) error {
	userID, ok := requireActor(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var payload dto.EventCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Create(c.Context(), payload, userID)
	if err != nil {
		return h.mutationError(c, err, "failed to create event")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "event created", event)
}

func (h *EventHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	event, err := h.events.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "event not found")
		}
		h.logger.Error().Err(err).Msg("failed to load event")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load event")
	}

	return utils.SendSuccess(c, "event", event)
}

func (h *EventHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	var payload dto.EventUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	event, err := h.events.Update(c.Context(), id, payload)
	if err != nil {
		return h.mutationError(c, err, "failed to update event")
	}

	return utils.SendSuccess(c, "event updated", event)
}

func (h *EventHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid event id")
	}

	if err := h.events.Delete(c.Context(), id); err != nil {
		return h.mutationError(c, err, "failed to delete event")
	}

	return utils.SendSuccess(c, "event deleted", nil)
}

func (h *EventHandler) mutationError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "event not found")
	case errors.Is(err, service.ErrInvalidDateRange):
		return utils.SendError(c, fiber.StatusBadRequest, "end date must not precede start date")
	case errors.As(err, &validationErrs):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid data")
	default:
		h.logger.Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

func parseDateRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := parseDate(fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
