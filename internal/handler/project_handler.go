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

// ProjectHandler handles project routes plus the nested contact and progress
// note collections.
type ProjectHandler struct {
	projects service.ProjectService
	contacts service.ContactService
	updates  service.ProjectUpdateService
	logger   zerolog.Logger
}

// NewProjectHandler constructs a project handler.
func NewProjectHandler(projects service.ProjectService, contacts service.ContactService, updates service.ProjectUpdateService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		contacts: contacts,
		updates:  updates,
		logger:   logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Get("/:id/contacts", h.listContacts)
	router.Post("/:id/contacts", h.addContact)
	router.Get("/:id/updates", h.listUpdates)
	router.Post("/:id/updates", h.addUpdate)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	responsibleID, err := parseQueryUint(c, "responsible")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid responsible id")
	}

	filter := service.ProjectListFilter{
		Status:        c.Query("status"),
		ResponsibleID: responsibleID,
		Municipality:  c.Query("municipality"),
	}

	projects, err := h.projects.List(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}

	return utils.SendSuccess(c, "projects", projects)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	var payload dto.ProjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	project, err := h.projects.Create(c.Context(), payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to create project")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
}

func (h *ProjectHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.projects.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		h.logger.Error().Err(err).Msg("failed to load project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load project")
	}

	return utils.SendSuccess(c, "project", project)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.ProjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	project, err := h.projects.Update(c.Context(), id, payload, actorID(c))
	if err != nil {
		return h.mutationError(c, err, "failed to update project")
	}

	return utils.SendSuccess(c, "project updated", project)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	if err := h.projects.Delete(c.Context(), id, actorID(c)); err != nil {
		return h.mutationError(c, err, "failed to delete project")
	}

	return utils.SendSuccess(c, "project deleted", nil)
}

func (h *ProjectHandler) listContacts(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	contacts, err := h.contacts.ListByProject(c.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list contacts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list contacts")
	}

	return utils.SendSuccess(c, "contacts", contacts)
}

func (h *ProjectHandler) addContact(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.ContactCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contacts.Add(c.Context(), id, payload)
	if err != nil {
		return h.mutationError(c, err, "failed to add contact")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "contact added", contact)
}

func (h *ProjectHandler) listUpdates(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	updates, err := h.updates.ListByProject(c.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list project updates")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list project updates")
	}

	return utils.SendSuccess(c, "project updates", updates)
}

func (h *ProjectHandler) addUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	userID, ok := requireActor(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	var payload dto.ProjectUpdateNoteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	update, err := h.updates.Add(c.Context(), id, payload, userID)
	if err != nil {
		return h.mutationError(c, err, "failed to post project update")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project update posted", update)
}

func (h *ProjectHandler) mutationError(c *fiber.Ctx, err error, fallback string) error {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrProjectNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "project not found")
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
