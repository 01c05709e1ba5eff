// Package flywheel implements the repository ports against the Flywheel
// REST API.
package flywheel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/naccdata/flywheel-extensions/domain"
	"github.com/naccdata/flywheel-extensions/domain/model"
	"github.com/naccdata/flywheel-extensions/internal/logging"
)

const (
	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the gear in Flywheel access logs.
	DefaultUserAgent = "create_project"
)

// Client is the Flywheel API client. Requests are sent once; nothing is retried.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
}

// ClientConfig holds configuration for creating a new client.
type ClientConfig struct {
	BaseURL    string // e.g. https://fw.example.org; derived from APIKey when empty
	APIKey     string // "<host>:<key>" or bare key when BaseURL is set
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// New creates a new Flywheel API client.
func New(cfg ClientConfig) (*Client, error) {
	baseURL, key := cfg.BaseURL, cfg.APIKey
	if key == "" {
		return nil, fmt.Errorf("flywheel API key is required")
	}
	if baseURL == "" {
		var err error
		if baseURL, key, err = ParseAPIKey(cfg.APIKey); err != nil {
			return nil, err
		}
	} else if _, k, err := ParseAPIKey(cfg.APIKey); err == nil {
		key = k
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{httpClient: httpClient, baseURL: baseURL, apiKey: key, userAgent: userAgent}, nil
}

// Repositories returns the client as a domain repository set.
func (c *Client) Repositories() *domain.Repositories {
	return &domain.Repositories{Group: &GroupRepository{c: c}, Project: &ProjectRepository{c: c}}
}

// doRequest performs one HTTP request. Non-2xx responses and 2xx bodies
// that cannot be decoded become *model.APIError; failures to complete the
// exchange become *model.TransportError.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	op := method + " " + path
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "scitran-user "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logging.FromContext(ctx).Debug(ctx, "flywheel request", "op", op)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &model.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &model.TransportError{Op: op, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &model.APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("malformed response to %s: %v", op, err)}
		}
	}
	return nil
}
