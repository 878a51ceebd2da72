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

// UserHandler handles user account routes.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs a user handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register wires user routes. Creation is restricted to admins at the router.
func (h *UserHandler) Register(router fiber.Router, adminOnly fiber.Handler) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", adminOnly, h.create)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users, err := h.service.List(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	return utils.SendSuccess(c, "users", users)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Msg("failed to load user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load user")
	}

	return utils.SendSuccess(c, "user", user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var payload dto.UserCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Create(c.Context(), payload)
	if err != nil {
		var validationErrs validator.ValidationErrors
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			return utils.SendError(c, fiber.StatusBadRequest, "username already exists")
		case errors.As(err, &validationErrs):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid data")
		default:
			h.logger.Error().Err(err).Msg("failed to create user")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create user")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "user created", user)
}
