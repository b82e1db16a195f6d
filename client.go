package neutronpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RequestObserver is invoked after every outbound API call, successful or
// not. A zero status means the request never produced a response.
type RequestObserver func(method, path string, status int, duration time.Duration)

// Client is the authenticated request dispatcher for the NeutronPay API.
// Every call transparently ensures a live session first (a cheap in-memory
// check when the cached token is still valid) and carries its bearer token.
//
// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *SessionManager
	logger     zerolog.Logger
	observer   RequestObserver
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls and the
// session handshake.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger attaches a logger to the client and its session manager.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithRequestObserver registers a hook observing every outbound API call,
// typically wired to metrics.
func WithRequestObserver(obs RequestObserver) Option {
	return func(cl *Client) { cl.observer = obs }
}

// NewClient creates a NeutronPay API client for the given credentials.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL:    creds.BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	c.session = NewSessionManager(creds,
		WithSessionHTTPClient(c.httpClient),
		WithSessionLogger(c.logger))
	return c
}

// Session exposes the client's session manager.
func (c *Client) Session() *SessionManager {
	return c.session
}

// VerifyCredentials forces a fresh handshake regardless of any cached
// session and returns the resulting account ID.
func (c *Client) VerifyCredentials(ctx context.Context) (string, error) {
	session, err := c.session.ForceReauthenticate(ctx)
	if err != nil {
		return "", err
	}
	return session.AccountID, nil
}

// Do issues an authenticated API request. The body, when non-nil, is sent as
// JSON; the success response is decoded into result when result is non-nil.
// A non-2xx status yields an *APIError whose message favors the body's
// "error" field, then "message", then the HTTP status text.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) error {
	session, err := c.session.EnsureAuthenticated(ctx)
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+session.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(method, path, 0, time.Since(start))
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	c.observe(method, path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := decodeAPIError(resp, method, path)
		c.logger.Debug().Int("status", apiErr.StatusCode).Str("path", path).Msg(apiErr.Message)
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) observe(method, path string, status int, d time.Duration) {
	if c.observer != nil {
		c.observer(method, path, status, d)
	}
}

// decodeAPIError builds an *APIError from a non-success response, tolerating
// empty or non-JSON bodies.
func decodeAPIError(resp *http.Response, method, path string) *APIError {
	body, _ := io.ReadAll(resp.Body)
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    msg,
		Method:     method,
		Path:       path,
	}
}
