package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestor-pm/gestor-api/internal/config"
	"github.com/gestor-pm/gestor-api/internal/database"
	"github.com/gestor-pm/gestor-api/internal/handler"
	"github.com/gestor-pm/gestor-api/internal/middleware"
	"github.com/gestor-pm/gestor-api/internal/models"
	"github.com/gestor-pm/gestor-api/internal/repository"
	"github.com/gestor-pm/gestor-api/internal/router"
	"github.com/gestor-pm/gestor-api/internal/service"
	cloud "github.com/gestor-pm/gestor-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Subproject{},
		&models.Activity{},
		&models.Contact{},
		&models.ProjectUpdate{},
		&models.ActivityComment{},
		&models.Attachment{},
		&models.Event{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis url not set, dashboard cache disabled")
	}

	notifier := service.NewNoopNotifier()
	if cfg.NATSURL != "" {
		natsConn, err := database.ConnectNATS(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
		notifier = service.NewNATSNotifier(natsConn, cfg.AttentionSubject, logger)
	} else {
		logger.Warn().Msg("nats url not set, attention events disabled")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	subprojectRepo := repository.NewSubprojectRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	contactRepo := repository.NewContactRepository(db)
	updateRepo := repository.NewProjectUpdateRepository(db)
	commentRepo := repository.NewActivityCommentRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	eventRepo := repository.NewEventRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	auditService := service.NewAuditService(auditRepo, logger)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, validate, logger)
	userService := service.NewUserService(userRepo, validate, logger)
	projectService := service.NewProjectService(projectRepo, auditService, validate, logger)
	subprojectService := service.NewSubprojectService(subprojectRepo, projectRepo, auditService, validate, logger)
	activityService := service.NewActivityService(activityRepo, subprojectRepo, auditService, validate, logger)
	contactService := service.NewContactService(contactRepo, projectRepo, validate, logger)
	updateService := service.NewProjectUpdateService(updateRepo, projectRepo, validate, logger)
	commentService := service.NewActivityCommentService(commentRepo, activityRepo, validate, logger)
	eventService := service.NewEventService(eventRepo, validate, logger)
	dashboardService := service.NewDashboardService(projectRepo, redisClient, cfg.DashboardCacheTTL, logger)
	delayService := service.NewDelayService(projectRepo, subprojectRepo, activityRepo, updateRepo, notifier, logger)

	authHandler := handler.NewAuthHandler(authService, userService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	projectHandler := handler.NewProjectHandler(projectService, contactService, updateService, logger)
	subprojectHandler := handler.NewSubprojectHandler(subprojectService, logger)
	activityHandler := handler.NewActivityHandler(activityService, commentService, logger)
	eventHandler := handler.NewEventHandler(eventService, logger)
	auditHandler := handler.NewAuditHandler(auditService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	var attachmentHandler *handler.AttachmentHandler
	if cfg.CloudinaryCloudName != "" {
		uploader, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		attachmentService := service.NewAttachmentService(attachmentRepo, uploader, logger)
		attachmentHandler = handler.NewAttachmentHandler(attachmentService, logger)
	} else {
		logger.Warn().Msg("cloudinary not configured, attachment uploads disabled")
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	sweeper := service.NewDelaySweeper(delayService, cfg.SweepWarmup, cfg.SweepInterval, logger)
	sweeper.Start(sweepCtx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		ProjectHandler:    projectHandler,
		SubprojectHandler: subprojectHandler,
		ActivityHandler:   activityHandler,
		EventHandler:      eventHandler,
		AttachmentHandler: attachmentHandler,
		AuditHandler:      auditHandler,
		DashboardHandler:  dashboardHandler,
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, stopSweep)
}

func waitForShutdown(app *fiber.App, stopSweep context.CancelFunc) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
