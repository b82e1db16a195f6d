// Package lending is a thin client for the collateralized-lending
// micro-service. The peer is opaque: every operation is a JSON passthrough
// and all loan logic (LTV, multisig, DLC settlement) lives on the other side.
package lending

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the lending service endpoint used when none is
// configured.
const DefaultBaseURL = "http://localhost:3001"

// Error is a non-2xx response from the lending service.
type Error struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("lending api error [%d]: %s [%s]", e.StatusCode, e.Message, e.Path)
}

// Client talks plain JSON REST to the lending service. Unlike the NeutronPay
// client there is no session handshake; the peer trusts the deployment
// boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// NewClient creates a lending client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues a request and decodes the JSON response. Non-2xx statuses return
// an *Error preferring the body's "error" field.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = errBody.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.logger.Debug().Int("status", resp.StatusCode).Str("path", path).Msg(msg)
		return nil, &Error{StatusCode: resp.StatusCode, Message: msg, Path: path}
	}

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return out, nil
}

// QuoteLoan prices a loan for the given terms.
func (c *Client) QuoteLoan(ctx context.Context, terms map[string]interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/quote", terms)
}

// CreateDeposit creates the multisig collateral deposit for a quoted loan.
func (c *Client) CreateDeposit(ctx context.Context, req map[string]interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/deposit", req)
}

// ConfirmCollateral signals that the collateral deposit has been funded.
func (c *Client) ConfirmCollateral(ctx context.Context, loanID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/"+url.PathEscape(loanID)+"/collateral/confirm", nil)
}

// Disburse triggers disbursement of a collateralized loan.
func (c *Client) Disburse(ctx context.Context, loanID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/"+url.PathEscape(loanID)+"/disburse", nil)
}

// Repay records a repayment against a loan.
func (c *Client) Repay(ctx context.Context, loanID string, payment map[string]interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/"+url.PathEscape(loanID)+"/repay", payment)
}

// CheckLiquidation returns the loan's current liquidation status.
func (c *Client) CheckLiquidation(ctx context.Context, loanID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodGet, "/loan/"+url.PathEscape(loanID)+"/liquidation", nil)
}

// Settle settles a matured or liquidated loan.
func (c *Client) Settle(ctx context.Context, loanID string) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/loan/"+url.PathEscape(loanID)+"/settle", nil)
}

// Notify forwards a notification payload to the lending service.
func (c *Client) Notify(ctx context.Context, payload map[string]interface{}) (map[string]interface{}, error) {
	return c.do(ctx, http.MethodPost, "/notifications", payload)
}
