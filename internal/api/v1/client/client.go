// Package client provides the API client for interacting with the IntakeFlow API
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

	"github.com/celestiaorg/intakeflow/internal/api/v1/routes"
	"github.com/celestiaorg/intakeflow/internal/constants"
	"github.com/celestiaorg/intakeflow/internal/db/models"
	"github.com/celestiaorg/intakeflow/internal/types"
)

// DefaultTimeout is the default timeout for API requests
const DefaultTimeout = 30 * time.Second

// Client is the interface for API client
type Client interface {
	// Health Check
	HealthCheck(ctx context.Context) (types.HealthResponse, error)

	// Project Endpoints
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id uint) (models.Project, error)
	CreateProject(ctx context.Context, req types.ProjectRequest) (models.Project, error)
	UpdateProject(ctx context.Context, id uint, req types.ProjectRequest) (models.Project, error)
	UpdateProjectStatus(ctx context.Context, id uint, status string) (models.Project, error)
	DeleteProject(ctx context.Context, id uint) error
}

var _ Client = &APIClient{}

// Options contains configuration options for the API client
type Options struct {
	// BaseURL is the base URL of the API
	BaseURL string

	// Timeout is the request timeout
	Timeout time.Duration

	// APIKey is sent on every mutating request
	APIKey string

	// APIKeyHeader is the header the key is sent in
	APIKeyHeader string
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL:      routes.DefaultBaseURL,
		Timeout:      DefaultTimeout,
		APIKey:       constants.DefaultAPIKey,
		APIKeyHeader: constants.DefaultAPIKeyHeader,
	}
}

// APIClient implements the Client interface
type APIClient struct {
	baseURL      string
	timeout      time.Duration
	apiKey       string
	apiKeyHeader string
}

// NewClient creates a new API client with the given options
func NewClient(opts *Options) (Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	// Validate the base URL
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	header := opts.APIKeyHeader
	if header == "" {
		header = constants.DefaultAPIKeyHeader
	}

	return &APIClient{
		baseURL:      strings.TrimSuffix(opts.BaseURL, "/"),
		timeout:      timeout,
		apiKey:       opts.APIKey,
		apiKeyHeader: header,
	}, nil
}

// Fallback messages used when the server sends no usable body
const (
	MsgConflict     = "Duplicate Planner Task ID."
	MsgNotFound     = "Project not found (404)."
	MsgUnauthorized = "Unauthorized (missing or bad x-api-key)."
)

// APIError is a non-2xx reply from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError prefers the server's message and falls back to a per-status one
func newAPIError(statusCode int, body []byte) *APIError {
	var msg string
	var errBody types.ErrorResponse
	if err := json.Unmarshal(body, &errBody); err == nil {
		msg = strings.TrimSpace(errBody.Error)
	} else {
		msg = strings.TrimSpace(string(body))
	}

	if msg == "" {
		switch statusCode {
		case http.StatusConflict:
			msg = MsgConflict
		case http.StatusNotFound:
			msg = MsgNotFound
		case http.StatusUnauthorized:
			msg = MsgUnauthorized
		default:
			msg = fmt.Sprintf("Request failed (%d).", statusCode)
		}
	}
	return &APIError{StatusCode: statusCode, Message: msg}
}

// createAgent creates a new Fiber Agent for the given method and endpoint
func (c *APIClient) createAgent(ctx context.Context, method, endpoint string, body interface{}) (*fiber.Agent, error) {
	// Resolve the endpoint URL
	fullURL := c.baseURL + endpoint

	// Create a new agent based on the HTTP method
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	case http.MethodPut:
		agent = fiber.Put(fullURL)
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

	// Set common headers
	agent.Set("Accept", "application/json")
	if method != http.MethodGet && c.apiKey != "" {
		agent.Set(c.apiKeyHeader, c.apiKey)
	}

	// Add body if provided
	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// doRequest sends the HTTP request and processes the response
func (c *APIClient) doRequest(agent *fiber.Agent, v interface{}) error {
	// Execute the request
	statusCode, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	// Check for non-success status codes
	if statusCode < 200 || statusCode >= 300 {
		return newAPIError(statusCode, body)
	}

	// Decode the response body if a target is provided
	if v != nil && len(body) > 0 {
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

// executeRequest creates an agent, sends the request, and processes the response
func (c *APIClient) executeRequest(ctx context.Context, method, endpoint string, body, response interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent, err := c.createAgent(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	return c.doRequest(agent, response)
}

// HealthCheck checks the health of the API
func (c *APIClient) HealthCheck(ctx context.Context) (types.HealthResponse, error) {
	var resp types.HealthResponse
	err := c.executeRequest(ctx, http.MethodGet, routes.HealthCheckURL(), nil, &resp)
	return resp, err
}

// ListProjects retrieves every project
func (c *APIClient) ListProjects(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	err := c.executeRequest(ctx, http.MethodGet, routes.ListProjectsURL(), nil, &projects)
	return projects, err
}

// GetProject retrieves a project by ID
func (c *APIClient) GetProject(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodGet, routes.GetProjectURL(id), nil, &project)
	return project, err
}

// CreateProject creates a new project
func (c *APIClient) CreateProject(ctx context.Context, req types.ProjectRequest) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodPost, routes.CreateProjectURL(), req, &project)
	return project, err
}

// UpdateProject replaces every mutable field of a project
func (c *APIClient) UpdateProject(ctx context.Context, id uint, req types.ProjectRequest) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodPut, routes.UpdateProjectURL(id), req, &project)
	return project, err
}

// UpdateProjectStatus changes only the status of a project
func (c *APIClient) UpdateProjectStatus(ctx context.Context, id uint, status string) (models.Project, error) {
	var project models.Project
	err := c.executeRequest(ctx, http.MethodPut, routes.UpdateProjectStatusURL(id), types.StatusRequest{Status: status}, &project)
	return project, err
}

// DeleteProject deletes a project by ID
func (c *APIClient) DeleteProject(ctx context.Context, id uint) error {
	return c.executeRequest(ctx, http.MethodDelete, routes.DeleteProjectURL(id), nil, nil)
}
