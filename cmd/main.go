package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/devboard-esn/devboard/internal/config"
	"github.com/devboard-esn/devboard/internal/db"
	"github.com/devboard-esn/devboard/internal/db/repos"
	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/internal/metrics"
	"github.com/devboard-esn/devboard/internal/services"
	"github.com/devboard-esn/devboard/pkg/api/v1/handlers"
	"github.com/devboard-esn/devboard/pkg/api/v1/routes"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	flag.Parse()

	// A missing .env file is fine, the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.InitializeAndConfigure(cfg.Log.Level)

	database, err := db.New(db.Options{URL: cfg.Database.URL})
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Errorf("Failed to close database: %v", err)
		}
	}()

	projectService := services.NewProjectService(repos.NewProjectRepository(database))
	projectHandler := handlers.NewProjectHandler(projectService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return db.Ping(ctx, database)
	})
	m := metrics.New()

	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: true,
	})
	app.Use(m.Middleware())
	app.Use(logger.APILogger())

	routes.RegisterRoutes(app, projectHandler, healthHandler, m.Handler())

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Errorf("Failed to shut down server: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.InfoWithFields("Starting DevBoard API", map[string]interface{}{"addr": addr})
	if err := app.Listen(addr); err != nil {
		logger.Errorf("Server stopped: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
