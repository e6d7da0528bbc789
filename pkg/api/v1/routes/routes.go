// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/devboard-esn/devboard/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Service routes (health, readiness, metrics) before resource routes
2. Order routes in GET, POST, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last.
3. For clarity, naming should match the action (i.e. ListProjects, DeleteProject)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Service routes
	HealthCheck = "HealthCheck"
	ReadyCheck  = "ReadyCheck"
	Metrics     = "Metrics"

	// Project routes
	ListProjects  = "ListProjects"
	GetProject    = "GetProject"
	CreateProject = "CreateProject"
	DeleteProject = "DeleteProject"
)

// routeCache stores extracted routes for use prior to compilation
var (
	routeCache     map[string]string
	routeCacheMu   sync.RWMutex
	routeCacheInit sync.Once
)

// RegisterRoutes configures all the v1 routes
func RegisterRoutes(
	app *fiber.App,
	projectHandler *handlers.ProjectHandler,
	healthHandler *handlers.HealthHandler,
	metricsHandler fiber.Handler,
) {
	app.Get("/health", healthHandler.Health).Name(HealthCheck)
	app.Get("/ready", healthHandler.Ready).Name(ReadyCheck)
	app.Get("/metrics", metricsHandler).Name(Metrics)

	v1 := app.Group(APIv1Prefix)

	projects := v1.Group("/projects")
	projects.Get("/", projectHandler.ListProjects).Name(ListProjects)
	projects.Get("/:id", projectHandler.GetProject).Name(GetProject)
	projects.Post("/", projectHandler.CreateProject).Name(CreateProject)
	projects.Delete("/:id", projectHandler.DeleteProject).Name(DeleteProject)
}

// initRouteCache initializes the route cache by creating a mock app and extracting routes
func initRouteCache() {
	routeCacheInit.Do(func() {
		cache := make(map[string]string)

		app := fiber.New()
		RegisterRoutes(app, &handlers.ProjectHandler{}, &handlers.HealthHandler{}, func(c *fiber.Ctx) error {
			return c.Next()
		})

		for _, route := range app.GetRoutes() {
			if route.Name != "" {
				cache[route.Name] = route.Path
			}
		}

		routeCacheMu.Lock()
		routeCache = cache
		routeCacheMu.Unlock()
	})
}

// GetRoute returns the route pattern for the given route name
func GetRoute(name string) string {
	initRouteCache()

	routeCacheMu.RLock()
	defer routeCacheMu.RUnlock()
	return routeCache[name]
}

// BuildURL builds a URL for the given route name and parameters
func BuildURL(routeName string, params map[string]string, queryParams url.Values) string {
	route := GetRoute(routeName)
	if route == "" {
		return ""
	}

	for param, value := range params {
		route = strings.ReplaceAll(route, ":"+param, url.PathEscape(value))
	}

	// Remove trailing slash if it's a base endpoint with no parameters
	if len(route) > 1 && strings.HasSuffix(route, "/") && !strings.Contains(route, ":") {
		route = strings.TrimSuffix(route, "/")
	}

	if len(queryParams) > 0 {
		route = fmt.Sprintf("%s?%s", route, queryParams.Encode())
	}

	return route
}

// Service route helpers

// HealthCheckURL returns the URL for the health check endpoint
func HealthCheckURL() string {
	return BuildURL(HealthCheck, nil, nil)
}

// ReadyCheckURL returns the URL for the readiness endpoint
func ReadyCheckURL() string {
	return BuildURL(ReadyCheck, nil, nil)
}

// Project route helpers

// ListProjectsURL returns the URL for listing projects
func ListProjectsURL() string {
	return BuildURL(ListProjects, nil, nil)
}

// GetProjectURL returns the URL for getting a project by ID
func GetProjectURL(id string) string {
	return BuildURL(GetProject, map[string]string{"id": id}, nil)
}

// CreateProjectURL returns the URL for creating a project
func CreateProjectURL() string {
	return BuildURL(CreateProject, nil, nil)
}

// DeleteProjectURL returns the URL for deleting a project by ID
func DeleteProjectURL(id string) string {
	return BuildURL(DeleteProject, map[string]string{"id": id}, nil)
}
