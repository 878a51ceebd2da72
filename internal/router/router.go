package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestor-pm/gestor-api/internal/config"
	"github.com/gestor-pm/gestor-api/internal/handler"
	"github.com/gestor-pm/gestor-api/internal/middleware"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	ProjectHandler    *handler.ProjectHandler
	SubprojectHandler *handler.SubprojectHandler
	ActivityHandler   *handler.ActivityHandler
	EventHandler      *handler.EventHandler
	AttachmentHandler *handler.AttachmentHandler
	AuditHandler      *handler.AuditHandler
	DashboardHandler  *handler.DashboardHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Common v1 group for health & headers
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)

		protected := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(users, adminOnly)
	}

	if deps.ProjectHandler != nil {
		projects := api.Group("/projects", jwtMiddleware)
		deps.ProjectHandler.Register(projects)
	}

	if deps.SubprojectHandler != nil {
		subprojects := api.Group("/subprojects", jwtMiddleware)
		deps.SubprojectHandler.Register(subprojects)
	}

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities)
	}

	if deps.EventHandler != nil {
		events := api.Group("/events", jwtMiddleware)
		deps.EventHandler.Register(events)
	}

	if deps.AttachmentHandler != nil {
		attachments := api.Group("/attachments", jwtMiddleware)
		deps.AttachmentHandler.Register(attachments)
	}

	if deps.AuditHandler != nil {
		audit := api.Group("/audit", jwtMiddleware, adminOnly)
		deps.AuditHandler.Register(audit)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware)
		deps.DashboardHandler.Register(dashboard)
	}
}
