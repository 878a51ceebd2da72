package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/config"
	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/handler"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
	"github.com/gestor-pm/gestor-api/internal/router"
	"github.com/gestor-pm/gestor-api/internal/service"
)

func setupProjectApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Subproject{},
		&models.Contact{},
		&models.ProjectUpdate{},
		&models.AuditLog{},
	))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	projectRepo := repository.NewProjectRepository(db)
	contactRepo := repository.NewContactRepository(db)
	updateRepo := repository.NewProjectUpdateRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	projectService := service.NewProjectService(projectRepo, auditService, validate, logger)
	contactService := service.NewContactService(contactRepo, projectRepo, validate, logger)
	updateService := service.NewProjectUpdateService(updateRepo, projectRepo, validate, logger)

	app := fiber.New()

	projectHandler := handler.NewProjectHandler(projectService, contactService, updateService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)

	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		ProjectHandler: projectHandler,
		AuditHandler:   auditHandler,
		JWTMiddleware: func(c *fiber.Ctx) error {
			c.Locals("user_id", uint(1))
			c.Locals("user_role", "admin")
			return c.Next()
		},
	})

	return app
}

type projectEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    dto.ProjectResponse `json:"data"`
}

func TestProjectHandlerCreateGetUpdate(t *testing.T) {
	app := setupProjectApp(t)

	body, _ := json.Marshal(fiber.Map{
		"name":   "Escola Municipal",
		"status": "Em andamento",
		"sla":    30,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created projectEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.True(t, created.Success)
	require.Equal(t, "Escola Municipal", created.Data.Name)
	require.False(t, created.Data.IsDelayed)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", created.Data.ID), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ = json.Marshal(fiber.Map{"status": "Finalizado"})
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/v1/projects/%d", created.Data.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated projectEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	require.Equal(t, "Finalizado", updated.Data.Status)
}

func TestProjectHandlerRejectsUnknownStatus(t *testing.T) {
	app := setupProjectApp(t)

	body, _ := json.Marshal(fiber.Map{"name": "X", "status": "Cancelado"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProjectHandlerGetMissingProject(t *testing.T) {
	app := setupProjectApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProjectHandlerMutationsLeaveAuditTrail(t *testing.T) {
	app := setupProjectApp(t)

	body, _ := json.Marshal(fiber.Map{"name": "Auditado", "status": "Aguardando"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created projectEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/projects/%d", created.Data.ID), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/audit/project/%d", created.Data.ID), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var trail struct {
		Data []models.AuditLog `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trail))
	require.Len(t, trail.Data, 2)
	require.Equal(t, models.AuditActionDelete, trail.Data[0].Action)
	require.Equal(t, models.AuditActionCreate, trail.Data[1].Action)
}

func TestProjectHandlerProgressNotes(t *testing.T) {
	app := setupProjectApp(t)

	body, _ := json.Marshal(fiber.Map{"name": "Com notas", "status": "Em andamento"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var created projectEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))

	body, _ = json.Marshal(fiber.Map{"content": "<script>alert(1)</script>obra iniciada"})
	req = httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/updates", created.Data.ID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/updates", created.Data.ID), nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)

	var notes struct {
		Data []models.ProjectUpdate `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&notes))
	require.Len(t, notes.Data, 1)
	require.Equal(t, "obra iniciada", notes.Data[0].Content, "markup is stripped from notes")
}
