// Package api is the REST client for the coffee service.
//
// Every request goes through one pipeline: bearer injection (except for the
// sign-in endpoints), JSON encoding, and envelope unwrapping. The backend
// wraps all payloads as {success, data, message, errors}; a success=false
// body or a non-2xx status both surface as coded errors so callers can
// branch without inspecting HTTP details.
package api

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

	"github.com/felixgeelhaar/kopi/internal/errors"
	"github.com/felixgeelhaar/kopi/internal/log"
)

// noAuthPaths are the endpoints that never carry a bearer token.
var noAuthPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/admin/login",
}

// TokenSource supplies the current bearer token, or "" when signed out.
// The session store owns the token; the client only reads it per request.
type TokenSource func() string

// Client is the coffee service API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *log.Logger

	// onUnauthorized runs when a non-auth endpoint answers 401, before the
	// error is returned. The session store hooks its forced logout here.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTokenSource sets where the client reads the bearer token from.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.token = src
	}
}

// WithUnauthorizedHook sets the forced-logout callback for 401 responses.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) {
		c.onUnauthorized = fn
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. Tests use this.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		token:  func() string { return "" },
		logger: log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured API base path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// needsAuth reports whether the path is outside the no-auth allow-list.
func needsAuth(path string) bool {
	for _, p := range noAuthPaths {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// isAuthEndpoint reports whether the path belongs to the auth surface.
// A 401 from these endpoints means bad credentials, not an expired session.
func isAuthEndpoint(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// roundTrip performs one request and returns the unwrapped success envelope.
// Error statuses and success=false bodies come back as coded errors.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	return c.roundTripAs(ctx, method, path, query, body, "")
}

// roundTripAs is roundTrip with an explicit bearer token. The refresh
// endpoint needs this: it authenticates with the refresh token, not the
// access token the TokenSource would supply.
func (c *Client) roundTripAs(ctx context.Context, method, path string, query url.Values, body any, bearer string) (*envelope, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to encode request body", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to build request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else if needsAuth(path) {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, errors.NewConnectivityError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIResponse, "failed to read response body", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body is tolerated for error statuses; the status
		// mapping below still produces a useful message.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, path, &env)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" && len(env.Errors) > 0 {
			msg = strings.Join(env.Errors, ", ")
		}
		if msg == "" {
			msg = "request rejected"
		}
		return nil, errors.New(errors.ErrCodeAPIRejected, msg).WithSuggestions(env.Errors...)
	}

	return &env, nil
}

// do performs one request and decodes the envelope's data into out.
// A nil out discards the payload.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	env, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(errors.ErrCodeAPIResponse, "failed to decode response payload", err)
		}
	}

	return nil
}

// statusError maps an HTTP error status to a coded error.
func (c *Client) statusError(status int, path string, env *envelope) error {
	msg := env.Message
	if msg == "" && len(env.Errors) > 0 {
		msg = strings.Join(env.Errors, ", ")
	}

	switch status {
	case http.StatusUnauthorized:
		if !isAuthEndpoint(path) {
			// The session is gone; tear it down once, centrally.
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
			return errors.NewSessionExpiredError()
		}
		if msg == "" {
			msg = "invalid credentials"
		}
		return errors.New(errors.ErrCodeAPIUnauthorized, msg)

	case http.StatusForbidden:
		return errors.New(errors.ErrCodeAPIForbidden, "permission denied")

	case http.StatusNotFound:
		return errors.New(errors.ErrCodeAPINotFound, "the requested resource does not exist")

	case http.StatusUnprocessableEntity:
		if len(env.Errors) > 0 {
			msg = strings.Join(env.Errors, ", ")
		}
		if msg == "" {
			msg = "invalid request data"
		}
		return errors.New(errors.ErrCodeAPIValidation, msg)

	case http.StatusInternalServerError:
		return errors.New(errors.ErrCodeAPIServer, "the coffee service hit an internal error").
			WithSuggestion("Try again in a moment")

	default:
		if msg == "" {
			msg = fmt.Sprintf("request failed (%d)", status)
		} else {
			msg = fmt.Sprintf("%s (%d)", msg, status)
		}
		return errors.New(errors.ErrCodeAPIStatus, msg)
	}
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post is a convenience wrapper for POST requests.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// put is a convenience wrapper for PUT requests.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// patch is a convenience wrapper for PATCH requests.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// delete is a convenience wrapper for DELETE requests.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
