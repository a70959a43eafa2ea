// Package transport provides the shared HTTP plumbing for data source
// adapters: a timeout-bounded client, a descriptive client identifier header,
// and response decoding that maps failures onto the fieldguide error taxonomy.
package transport

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"

	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/errors"
)

// Client performs HTTP GET requests against public data APIs.
type Client struct {
	http      *http.Client
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client. Used by tests and
// by adapters that need a different timeout for their fallback endpoint.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent overrides the client identifier header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a transport client with the default per-call timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: constants.DefaultHTTPTimeout},
		userAgent: constants.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and decodes the JSON response into target.
// Errors are classified per source: timeouts become *errors.TimeoutError,
// connection-level failures *errors.TransportError, and non-2xx responses
// *errors.APIError carrying the status code.
func (c *Client) Get(ctx context.Context, sourceID, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.NewTransportError(sourceID, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyRequestError(sourceID, err)
	}

	return DecodeResponse(sourceID, resp, target)
}

// classifyRequestError separates timeouts from connection-level failures.
func classifyRequestError(sourceID string, err error) error {
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.NewTimeoutError("fetch", constants.DefaultHTTPTimeout.String(), sourceID)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError("fetch", "", sourceID)
	}
	return errors.NewTransportError(sourceID, err)
}

// DecodeResponse decodes a JSON response into the target structure, mapping
// non-2xx statuses to *errors.APIError.
func DecodeResponse(sourceID string, resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewTransportError(sourceID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &errors.APIError{
			Source:     sourceID,
			StatusCode: resp.StatusCode,
			Message:    truncate(string(body), 200),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", sourceID+" response", err)
	}

	return nil
}

// BuildURL assembles base?query from a base endpoint and parameters.
func BuildURL(base string, params url.Values) string {
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
