package ambari

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-logr/logr"
)

const (
	apiPrefix      = "/api/v1"
	requestedBy    = "blueprintctl"
	defaultTimeout = 30 * time.Second
)

// Client talks to a single Ambari server.
type Client struct {
	baseURL    *url.URL
	user       string
	password   string
	httpClient *http.Client
	log        logr.Logger
	debug      atomic.Bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logr.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// WithDebug enables logging of every request URL.
func WithDebug(enabled bool) ClientOption {
	return func(c *Client) {
		c.debug.Store(enabled)
	}
}

// NewClient creates a client for the Ambari server at baseURL.
func NewClient(baseURL, user, password string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", baseURL)
	}

	c := &Client{
		baseURL:    u,
		user:       user,
		password:   password,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetDebug toggles logging of request URLs.
func (c *Client) SetDebug(enabled bool) {
	c.debug.Store(enabled)
}

// Debug reports whether request URLs are logged.
func (c *Client) Debug() bool {
	return c.debug.Load()
}

// URL returns the server base URL.
func (c *Client) URL() string {
	return c.baseURL.String()
}

// do performs a request against path (relative to /api/v1). A non-nil body
// is sent as JSON; a non-nil out receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(apiPrefix, path)
	u.RawQuery = query.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("X-Requested-By", requestedBy)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.debug.Load() {
		c.log.Info("api call", "method", method, "url", u.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if err := json.Unmarshal(respBody, &eb); err == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw = respBody
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}
