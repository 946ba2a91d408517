// Package webcache fetches documentation pages over HTTP and caches
// them on disk. A cached file is reused as-is until a forced refresh;
// there is no freshness check against the remote resource.
package webcache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/modelcat/modelcat/ports"
)

// DefaultTimeout bounds a fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Client fetches and caches remote documents.
type Client struct {
	httpClient *http.Client
	log        zerolog.Logger
}

// Config configures the web cache client.
type Config struct {
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New creates a web cache client with a fixed request timeout.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		log:        cfg.Logger,
	}
}

// Fetch returns the cached contents at cachePath when the file exists
// and force is false. Otherwise it issues a GET, fails on any status of
// 400 or above without retrying, persists the body verbatim, and
// returns it.
func (c *Client) Fetch(ctx context.Context, url, cachePath string, force bool) (string, error) {
	if !force {
		if data, err := os.ReadFile(cachePath); err == nil {
			c.log.Debug().Str("url", url).Str("cache", cachePath).Msg("cache hit")
			return string(data), nil
		}
	}

	c.log.Info().Str("url", url).Str("cache", cachePath).Msg("fetching")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(cachePath, body, 0o644); err != nil {
		return "", fmt.Errorf("write cache file: %w", err)
	}

	return string(body), nil
}

// Ensure interface compliance.
var _ ports.Fetcher = (*Client)(nil)
