package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// AuthHandler handles login and session introspection.
type AuthHandler struct {
	auth   service.AuthService
	users  service.UserService
	logger zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(auth service.AuthService, users service.UserService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		users:  users,
		logger: logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public login route.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected wires routes that require a valid token.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Get("/session", h.session)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.auth.Login(c.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		h.logger.Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	return utils.SendSuccess(c, "logged in", response)
}

func (h *AuthHandler) session(c *fiber.Ctx) error {
	userID, ok := requireActor(c)
	if !ok {
		return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
	}

	user, err := h.users.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusUnauthorized, "not authenticated")
		}
		h.logger.Error().Err(err).Msg("failed to load session user")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load session")
	}

	return utils.SendSuccess(c, "session", user)
}
