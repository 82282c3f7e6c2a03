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
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/kidtask-api/internal/config"
	"github.com/noah-isme/kidtask-api/internal/database"
	"github.com/noah-isme/kidtask-api/internal/handler"
	"github.com/noah-isme/kidtask-api/internal/middleware"
	"github.com/noah-isme/kidtask-api/internal/models"
	"github.com/noah-isme/kidtask-api/internal/repository"
	"github.com/noah-isme/kidtask-api/internal/router"
	"github.com/noah-isme/kidtask-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Logger()

	db, err := database.ConnectSQLite(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to open board store: %v", err)
	}

	if err := db.AutoMigrate(models.BoardModels()...); err != nil {
		log.Fatalf("failed to migrate board store: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Info().Msg("redis url not set, dashboard render cache disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Close()
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	publisher := service.NewTaskAssignmentPublisher(natsConn, cfg.NATSSubject, logger)

	boardRepo := repository.NewBoardRepository(db)
	activity := service.NewBoardActivityService(repository.NewBoardActivityRepository(db), boardRepo, logger)

	registry := service.DashboardRegistry{
		Child:   service.NewChildDashboardService(boardRepo, redisClient, cfg.DashboardCacheTTL, activity, validate, logger),
		Parent:  service.NewParentDashboardService(boardRepo, redisClient, cfg.DashboardCacheTTL, activity, publisher, validate, logger),
		Teacher: service.NewTeacherDashboardService(boardRepo, redisClient, cfg.DashboardCacheTTL, activity, publisher, validate, logger),
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AccessLog,
	})
	router.Register(app, cfg, router.Dependencies{
		BoardHandler:            handler.NewBoardHandler(registry, logger),
		BoardActivityHandler:    handler.NewBoardActivityHandler(activity, logger, cfg.StreamKeepAlive),
		ChildDashboardHandler:   handler.NewChildDashboardHandler(registry.Child, logger),
		ParentDashboardHandler:  handler.NewParentDashboardHandler(registry.Parent, logger),
		TeacherDashboardHandler: handler.NewTeacherDashboardHandler(registry.Teacher, logger),
		RateLimiter:             middleware.RateLimit("dashboard", cfg.RateLimitMax, cfg.RateLimitWindow, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
