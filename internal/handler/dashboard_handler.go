package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/service"
	"github.com/gestor-pm/gestor-api/internal/utils"
)

// DashboardHandler serves aggregated portfolio statistics.
type DashboardHandler struct {
	dashboard service.DashboardService
	logger    zerolog.Logger
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(dashboard service.DashboardService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		logger:    logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register wires dashboard routes.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.stats)
}

func (h *DashboardHandler) stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build dashboard stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build dashboard stats")
	}

	return utils.SendSuccess(c, "dashboard stats", stats)
}
