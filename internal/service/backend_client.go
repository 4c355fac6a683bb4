package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// BackendClient talks to the main listings backend (the external service that
// owns properties, categories, blogs and the rest of the dashboard's data).
// This service only needs it for health reporting and project-name lookups.
type BackendClient struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewBackendClient(baseURL string, logger *zap.Logger) *BackendClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Accept", "application/json")

	return &BackendClient{http: client, logger: logger}
}

// Ping reports whether the backend answers its health route.
func (c *BackendClient) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("backend ping: status %d", resp.StatusCode())
	}
	return nil
}

type backendProjectResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Title string `json:"title"`
	} `json:"data"`
}

// GetProjectName resolves a project's display name from the backend.
func (c *BackendClient) GetProjectName(ctx context.Context, projectID string) (string, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/projects/" + projectID)
	if err != nil {
		return "", fmt.Errorf("backend project lookup: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("backend project lookup: status %d", resp.StatusCode())
	}
	var out backendProjectResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("backend project lookup: %w", err)
	}
	if !out.Success || out.Data.Title == "" {
		return "", fmt.Errorf("backend project lookup: project %s not found", projectID)
	}
	return out.Data.Title, nil
}
