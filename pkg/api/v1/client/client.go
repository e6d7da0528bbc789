// Package client provides the API client for the DevBoard project resource
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/devboard-esn/devboard/pkg/api/v1/routes"
	"github.com/devboard-esn/devboard/pkg/models"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (map[string]string, error)

	// Project methods
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (models.Project, error)
	CreateProject(ctx context.Context, draft models.Draft) (models.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API, without the /api/v1 prefix
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	if _, err := url.Parse(opts.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &APIClient{
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		timeout: timeout,
	}, nil
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	fullURL := c.baseURL + endpoint

	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodDelete:
		agent = fiber.Delete(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Set timeout from context or client default
	if deadline, ok := ctx.Deadline(); ok {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.timeout)
	}

	agent.Set("Accept", "application/json")

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(ctx context.Context, agent *fiber.Agent, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	}

	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%w: error sending request: %w", ErrNetworkFailure, errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		message := "unknown error"
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return fmt.Errorf("%w: %w", ErrServerFailure, &fiber.Error{
			Code:    statusCode,
			Message: message,
		})
	}

	if v != nil {
		if len(body) == 0 {
			return fmt.Errorf("%w: empty response body", ErrMalformedResponse)
		}
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("%w: error decoding response: %w", ErrMalformedResponse, err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(ctx, agent, response)
}

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (map[string]string, error) {
	var response map[string]string
	if err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &response); err != nil {
		return map[string]string{}, err
	}
	return response, nil
}

// ListProjects returns the full project collection in server order.
// A body that is not a JSON array is reported as ErrMalformedResponse.
func (c *APIClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	var raw json.RawMessage
	if err := c.executeRequest(ctx, http.MethodGet, routes.ListProjectsURL(), nil, &raw); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array of projects", ErrMalformedResponse)
	}

	var projects []models.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("%w: error decoding projects: %w", ErrMalformedResponse, err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return projects, nil
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id string) (models.Project, error) {
	var project models.Project
	if err := c.executeRequest(ctx, http.MethodGet, routes.GetProjectURL(id), nil, &project); err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// CreateProject sends a draft and returns the persisted project with its
// server-assigned id and creation time
func (c *APIClient) CreateProject(ctx context.Context, draft models.Draft) (models.Project, error) {
	var project models.Project
	if err := c.executeRequest(ctx, http.MethodPost, routes.CreateProjectURL(), draft, &project); err != nil {
		return models.Project{}, err
	}
	if project.ID == "" {
		return models.Project{}, fmt.Errorf("%w: created project has no id", ErrMalformedResponse)
	}
	if project.CreatedAt.IsZero() {
		return models.Project{}, fmt.Errorf("%w: created project has no creation time", ErrMalformedResponse)
	}
	return project, nil
}

// DeleteProject deletes a project by ID. The response body is ignored.
func (c *APIClient) DeleteProject(ctx context.Context, id string) error {
	return c.executeRequest(ctx, http.MethodDelete, routes.DeleteProjectURL(id), nil, nil)
}
