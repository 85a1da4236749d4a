package fnclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client is an HTTP client for the fn inspection API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client. Defaults: localhost:7433, 30s timeout.
func New(opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.port)
	}

	return &Client{
		baseURL: fmt.Sprintf("http://%s:%d", cfg.host, cfg.port),
		http: &http.Client{
			Timeout: cfg.timeout,
		},
	}, nil
}

// Health checks if the server is reachable and healthy.
func (c *Client) Health(ctx context.Context) error {
	var body map[string]string
	if err := c.get(ctx, "/v1/health", &body); err != nil {
		return err
	}
	if body["status"] != "ok" {
		return fmt.Errorf("unexpected health status %q", body["status"])
	}
	return nil
}

// ListEpics returns every epic record in numeric order.
func (c *Client) ListEpics(ctx context.Context) ([]*Epic, error) {
	var epics []*Epic
	if err := c.get(ctx, "/v1/epics", &epics); err != nil {
		return nil, err
	}
	return epics, nil
}

// GetEpic returns one epic with its inferred status and tasks.
func (c *Client) GetEpic(ctx context.Context, id string) (*EpicDetail, error) {
	var detail EpicDetail
	if err := c.get(ctx, "/v1/epics/"+url.PathEscape(id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListEpicTasks returns one epic's tasks in sequence order.
func (c *Client) ListEpicTasks(ctx context.Context, epicID string) ([]*Task, error) {
	var tasks []*Task
	if err := c.get(ctx, "/v1/epics/"+url.PathEscape(epicID)+"/tasks", &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one task with its derived display status.
func (c *Client) GetTask(ctx context.Context, id string) (*TaskDetail, error) {
	var detail TaskDetail
	if err := c.get(ctx, "/v1/tasks/"+url.PathEscape(id), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Ready returns the tasks that can be started now. With a non-empty epicID
// the view narrows to that epic.
func (c *Client) Ready(ctx context.Context, epicID string) ([]*Task, error) {
	path := "/v1/ready"
	if epicID != "" {
		path += "?epic=" + url.QueryEscape(epicID)
	}
	var tasks []*Task
	if err := c.get(ctx, path, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Validate runs the server-side validation pass.
func (c *Client) Validate(ctx context.Context) (*ValidationResult, error) {
	var result ValidationResult
	if err := c.get(ctx, "/v1/validate", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// History returns the local change history of one record, newest first.
func (c *Client) History(ctx context.Context, id string) ([]*AuditEntry, error) {
	var entries []*AuditEntry
	if err := c.get(ctx, "/v1/tasks/"+url.PathEscape(id)+"/history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// get performs a GET request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if isConnectionRefused(err) {
			return ErrServerNotRunning
		}
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return parseErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseErrorResponse turns a non-200 response into an APIError.
func parseErrorResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read error response: %w", err)
	}

	var wrapper struct {
		Error APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Error.Code == "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))
	}
	return &wrapper.Error
}
