package atlassian

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

	"log/slog"

	"github.com/atlmcp/mcp-atlassian/internal/auth"
)

const defaultTimeout = 30 * time.Second

// Client is a thin helper around one Atlassian Server REST API. It holds the
// site base URL and a bearer-authenticated HTTP client; it performs no
// retries and no caching.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client for the specified site base URL and personal
// access token.
func NewClient(base, token string, logger *slog.Logger) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("atlassian: base URL required")
	}
	if token == "" {
		return nil, fmt.Errorf("atlassian: api token required")
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("atlassian: parse base url: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout:   defaultTimeout,
			Transport: auth.NewTransport(nil, token),
		},
		logger: logger,
	}, nil
}

// BaseURL returns the site base URL without a trailing slash. Services use it
// to build browse links for humans.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// NewRequest builds an HTTP request with optional query parameters and JSON body.
func (c *Client) NewRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("atlassian: encode body: %w", err)
		}
		bodyReader = buf
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

// Do executes the request and decodes the response JSON into out if provided.
// Non-2xx responses become *Error values carrying status and message.
func (c *Client) Do(req *http.Request, out any) error {
	c.logger.Debug("atlassian request", "method", req.Method, "path", req.URL.Path)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return parseError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("atlassian: decode response: %w", err)
	}

	return nil
}

// Get issues a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := c.NewRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// Post issues a POST request with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req, err := c.NewRequest(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	return c.Do(req, out)
}

// SetTransport overrides the underlying HTTP transport. Useful for testing.
func (c *Client) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		return
	}
	c.httpClient.Transport = rt
}
