// Package backend is the REST client for the dashboard's backend
// collaborator. It supplies the authoritative collections used to seed the
// list view-models when no persisted mirror exists; CRUD against the
// backend is reconciled into the view-models by the caller.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/ganot/dashview/internal/domain/invoice"
	"github.com/ganot/dashview/internal/domain/order"
	"github.com/ganot/dashview/internal/domain/project"
)

// Client talks to the backend REST API.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.ParseRequestURI(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q", baseURL)
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Projects fetches the authoritative project collection.
func (c *Client) Projects(ctx context.Context) ([]project.Project, error) {
	return fetch[project.Project](ctx, c, "/projects/")
}

// Invoices fetches the authoritative invoice collection.
func (c *Client) Invoices(ctx context.Context) ([]invoice.Invoice, error) {
	return fetch[invoice.Invoice](ctx, c, "/invoices/")
}

// Orders fetches the authoritative order collection.
func (c *Client) Orders(ctx context.Context) ([]order.Order, error) {
	return fetch[order.Order](ctx, c, "/orders/")
}

func fetch[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("fetch %s: unexpected status %d: %s", path, resp.StatusCode, body)
	}

	var records []T
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}
