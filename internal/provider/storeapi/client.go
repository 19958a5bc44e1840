// Package storeapi is the JSON-over-HTTP client for the commerce
// platform's store APIs: the graph query endpoint for products,
// categories, and sales channels, and the variant availability endpoint.
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/light-bringer/storefront-catalog-service/internal/pkg/graph"
)

const (
	graphPath        = "/query/graph"
	availabilityPath = "/variants/availability"

	publishableKeyHeader = "x-publishable-api-key"
	requestIDHeader      = "X-Request-Id"
)

// Client talks to the store API. All calls are synchronous; cancellation
// and deadlines come from the request context and the underlying
// http.Client timeout.
type Client struct {
	baseURL        string
	publishableKey string
	httpClient     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpClient = h
	}
}

// NewClient creates a store API client for the given base URL. The
// publishable key is sent on every call and may be empty for providers
// that do not require one.
func NewClient(baseURL, publishableKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		publishableKey: publishableKey,
		httpClient:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// graphQuery posts a graph envelope and decodes the data array into out.
func (c *Client) graphQuery(ctx context.Context, req graph.Request, out interface{}) error {
	var resp graph.Response
	if err := c.post(ctx, graphPath, req, &resp); err != nil {
		return fmt.Errorf("graph query %s: %w", req.Entity, err)
	}
	if len(resp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return fmt.Errorf("graph query %s: decoding data: %w", req.Entity, err)
	}
	return nil
}

// post sends a JSON payload and decodes the JSON reply into out.
func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())
	if c.publishableKey != "" {
		req.Header.Set(publishableKeyHeader, c.publishableKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("calling %s: unexpected status %d: %s", path, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
