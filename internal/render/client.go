// Package render talks to the optional rasterizer service that turns
// Markdown or Mermaid source into PNG images. The service being absent or
// unreachable is an expected condition the tool layer degrades on.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Kinds of renderable source.
const (
	KindMarkdown = "markdown"
	KindDiagram  = "diagram"
)

// Client is the renderer HTTP client. Immutable after construction and safe
// for concurrent use.
type Client struct {
	baseURL string
	theme   string
	httpc   *http.Client
}

// Options tune the rendered image.
type Options struct {
	Width  int
	Height int
}

type renderRequest struct {
	Kind     string `json:"kind"`
	Markdown string `json:"markdown,omitempty"`
	Code     string `json:"code,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Format   string `json:"format"`
	Theme    string `json:"theme,omitempty"`
}

type renderResponse struct {
	Image string `json:"image"`
}

// New returns a renderer client for the given base URL.
func New(baseURL, theme string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		theme:   theme,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Healthy probes GET /health and returns an error when the service is
// unreachable or unhealthy.
func (c *Client) Healthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("renderer health check: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("renderer unhealthy: http %d", resp.StatusCode)
	}
	return nil
}

// RenderMarkdown rasterizes a Markdown document (e.g. a mindmap outline) and
// returns the base64-encoded PNG payload.
func (c *Client) RenderMarkdown(ctx context.Context, markdown string, opts Options) (string, error) {
	return c.render(ctx, renderRequest{Kind: KindMarkdown, Markdown: markdown, Width: opts.Width, Height: opts.Height})
}

// RenderDiagram rasterizes Mermaid source and returns the base64-encoded PNG
// payload.
func (c *Client) RenderDiagram(ctx context.Context, code string, opts Options) (string, error) {
	return c.render(ctx, renderRequest{Kind: KindDiagram, Code: code, Width: opts.Width, Height: opts.Height})
}

func (c *Client) render(ctx context.Context, rr renderRequest) (string, error) {
	rr.Format = "png"
	rr.Theme = c.theme
	body, err := json.Marshal(rr)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("renderer: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("renderer: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("renderer: http %d: %s", resp.StatusCode, string(raw))
	}
	var res renderResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("renderer: decode response: %w", err)
	}
	if res.Image == "" {
		return "", fmt.Errorf("renderer returned no image")
	}
	return res.Image, nil
}
