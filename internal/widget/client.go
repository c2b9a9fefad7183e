package widget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ChatPath is the path of the answer endpoint relative to the base URL.
const ChatPath = "/api/chat"

// ErrMalformedResponse is returned when the endpoint answers 2xx but the body
// is not a JSON object with a string "answer" field.
var ErrMalformedResponse = errors.New("malformed chat response")

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("chat endpoint returned status %d: %s", e.Code, e.Body)
}

// Asker answers one question.
type Asker interface {
	Ask(ctx context.Context, query string) (string, error)
}

// Client calls the remote answer endpoint.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	timeout    *time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client. The client is copied, so
// later options never modify hc; nil keeps the default.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a transport-level timeout. Zero means none.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = &d }
}

// NewClient creates a client for the endpoint rooted at baseURL
// (e.g. http://localhost:8000).
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing chat base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("chat base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("chat base url %q: missing host", baseURL)
	}

	c := &Client{baseURL: u}
	for _, opt := range opts {
		opt(c)
	}

	hc := &http.Client{}
	if c.httpClient != nil {
		copied := *c.httpClient
		hc = &copied
	}
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = hc
	return c, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// RequestURL builds the GET url for query. Spaces are encoded as %20.
func (c *Client) RequestURL(query string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(query), "+", "%20")
	return c.baseURL.String() + ChatPath + "?query=" + escaped
}

// chatResponse is the accepted response schema.
type chatResponse struct {
	Answer *string `json:"answer"`
}

// Ask sends GET /api/chat?query=... and returns the answer field.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(query), nil)
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if parsed.Answer == nil {
		return "", fmt.Errorf("%w: missing answer field", ErrMalformedResponse)
	}
	return *parsed.Answer, nil
}
