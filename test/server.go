package test

import (
	"context"
	"net/http/httptest"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/devboard-esn/devboard/internal/db"
	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/internal/metrics"
	"github.com/devboard-esn/devboard/internal/services"
	"github.com/devboard-esn/devboard/pkg/api/v1/client"
	"github.com/devboard-esn/devboard/pkg/api/v1/handlers"
	"github.com/devboard-esn/devboard/pkg/api/v1/routes"
)

// testClientTimeout is the timeout for test API client requests
const testClientTimeout = 5 * time.Second

// SetupServer configures the test suite with a real API server
func SetupServer(suite *Suite) {
	suite.App = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	suite.Metrics = metrics.New()
	suite.App.Use(suite.Metrics.Middleware())
	suite.App.Use(logger.APILogger())

	projectService := services.NewProjectService(suite.ProjectRepo)
	projectHandler := handlers.NewProjectHandler(projectService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return db.Ping(ctx, suite.DB)
	})

	routes.RegisterRoutes(suite.App, projectHandler, healthHandler, suite.Metrics.Handler())

	// Create test server using adaptor to convert Fiber app to http.Handler
	suite.Server = httptest.NewServer(adaptor.FiberApp(suite.App))

	apiClient, err := client.NewClient(&client.Options{
		BaseURL: suite.Server.URL,
		Timeout: testClientTimeout,
	})
	suite.Require().NoError(err, "Failed to create API client")
	suite.APIClient = apiClient

	originalCleanup := suite.cleanup
	suite.cleanup = func() {
		if suite.Server != nil {
			suite.Server.Close()
		}
		if originalCleanup != nil {
			originalCleanup()
		}
	}
}
