package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// Client talks to the data-enrichment service that expands stored profile
// documents and synthesizes defaults for unknown users.
type Client interface {
	// Hydrate expands a stored document into its rich representation.
	Hydrate(ctx context.Context, doc json.RawMessage) (json.RawMessage, error)
	// Generate synthesizes a document for username. ok is false when the
	// service has no data for that user.
	Generate(ctx context.Context, username string) (doc json.RawMessage, ok bool, err error)
}

// HTTPError is a non-2xx answer from the enrichment service. Body is kept
// for logs only.
type HTTPError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("enrichment %s: http %d", e.Op, e.StatusCode)
}

func (e *HTTPError) HTTPStatusCode() int { return e.StatusCode }

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport overrides the default transport; tests point it at httptest.
	Transport http.RoundTripper
}

type client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

const maxResponseBytes = 8 << 20

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid enrichment base url %q", cfg.BaseURL)
	}
	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &client{
		log:     log.With("client", "EnrichmentClient"),
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}, nil
}

func (c *client) Hydrate(ctx context.Context, doc json.RawMessage) (json.RawMessage, error) {
	status, raw, err := c.do(ctx, http.MethodPost, "/api/profile/hydrate", doc)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &HTTPError{Op: "hydrate", StatusCode: status, Body: string(raw)}
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("enrichment hydrate: invalid json response")
	}
	return json.RawMessage(raw), nil
}

func (c *client) Generate(ctx context.Context, username string) (json.RawMessage, bool, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/api/profile/generate/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, false, err
	}
	switch {
	case status == http.StatusNotFound, status == http.StatusNoContent:
		return nil, false, nil
	case status < 200 || status >= 300:
		return nil, false, &HTTPError{Op: "generate", StatusCode: status, Body: string(raw)}
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, false, nil
	}
	if !json.Valid(trimmed) {
		return nil, false, fmt.Errorf("enrichment generate: invalid json response")
	}
	return json.RawMessage(trimmed), true, nil
}

func (c *client) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Enrichment request failed", "method", method, "path", path, "error", err)
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	c.log.Debug("Enrichment request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp.StatusCode, raw, nil
}
