package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/metric"
)

// ErrNetwork is returned for every failed call: transport errors and non-2xx
// responses alike. Callers are not expected to tell them apart.
var ErrNetwork = errors.New("network error")

// Client performs single-attempt JSON requests against the catalog service.
// It applies no timeout, retry or backoff; the request context is the only
// way to abandon a call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for baseURL. The base URL is fixed for the
// client's lifetime; with an empty one every call fails with ErrNetwork.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// GetJSON issues GET path and decodes the body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// PostJSON issues POST path with body encoded as JSON and decodes the reply into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Do performs one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	url, err := c.resolve(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrNetwork, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metric.ObserveUpstream(method, "transport_error", time.Since(start))
		c.logger.Warn("catalog request failed", "method", method, "url", url, "error", err)
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	metric.ObserveUpstream(method, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Warn("catalog request rejected", "method", method, "url", url, "status", resp.StatusCode)
		return fmt.Errorf("%w: unexpected status code: %d", ErrNetwork, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Warn("catalog response undecodable", "method", method, "url", url, "error", err)
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}
	return nil
}

func (c *Client) resolve(path string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.baseURL == "" {
		return "", errors.New("no catalog base URL configured")
	}
	return c.baseURL + path, nil
}
