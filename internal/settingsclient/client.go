// Package settingsclient talks to the daemon's configuration API.
package settingsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/automat-io/automat/internal/apperror"
	"github.com/automat-io/automat/internal/config"
	"github.com/automat-io/automat/internal/models"
)

// ErrDaemonNotRunning is returned when daemon.yaml is missing.
var ErrDaemonNotRunning = errors.New("daemon is not running")

const defaultTimeout = 10 * time.Second

// Loader fetches the tenant configuration.
type Loader interface {
	LoadConfig(ctx context.Context) (models.Config, error)
}

// Saver persists the tenant configuration.
type Saver interface {
	SaveConfig(ctx context.Context, cfg models.Config) (models.Config, error)
}

// Client implements Loader and Saver over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL, e.g. "http://127.0.0.1:4312".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// FromDaemon creates a client for the daemon recorded in daemon.yaml.
func FromDaemon() (*Client, error) {
	info, err := config.LoadDaemonInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read daemon info: %w", err)
	}
	if info == nil {
		return nil, ErrDaemonNotRunning
	}
	return New(info.BaseURL()), nil
}

// BaseURL returns the API address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health is the daemon's /health reply.
type Health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health probes the daemon.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &h)
	return h, err
}

// LoadConfig implements Loader.
func (c *Client) LoadConfig(ctx context.Context) (models.Config, error) {
	var cfg models.Config
	err := c.do(ctx, http.MethodGet, "/api/config", nil, &cfg)
	return cfg, err
}

// SaveConfig implements Saver. It returns the configuration as stored.
func (c *Client) SaveConfig(ctx context.Context, cfg models.Config) (models.Config, error) {
	body, err := json.Marshal(cfg)
	if err != nil {
		return models.Config{}, fmt.Errorf("failed to encode config: %w", err)
	}

	var saved models.Config
	err = c.do(ctx, http.MethodPost, "/api/config", bytes.NewReader(body), &saved)
	return saved, err
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.Wrap(apperror.Unavailable, "config service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Message == "" {
			e.Message = resp.Status
		}
		return apperror.FromStatus(resp.StatusCode, e.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

var (
	_ Loader = (*Client)(nil)
	_ Saver  = (*Client)(nil)
)
