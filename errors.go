package neutronpay

import (
	"errors"
	"fmt"
)

// Standard client error definitions

var (
	// ErrMissingCredentials indicates the API key or secret was not supplied.
	ErrMissingCredentials = errors.New("missing API credentials")

	// ErrInvoiceAmountRequired indicates a Lightning invoice was requested
	// without an amount. This is the one intent precondition checked
	// client-side; everything else is validated remotely.
	ErrInvoiceAmountRequired = errors.New("provide an invoice amount in sats")
)

// AuthError is a non-2xx response from the token-signature endpoint.
// The cached session stays cleared so the next call retries the handshake.
type AuthError struct {
	// StatusCode is the HTTP status returned by the handshake.
	StatusCode int

	// Message is the server-supplied error text, best effort.
	Message string
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("neutronpay authentication failed [%d]: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("neutronpay authentication failed [%d]", e.StatusCode)
}

// APIError is a non-2xx response from an authenticated API call.
//
// Message favors the body's "error" field, then "message", then the HTTP
// status text, in that order.
type APIError struct {
	// StatusCode is the HTTP status code returned by the API.
	StatusCode int

	// Message is the resolved error text.
	Message string

	// Method and Path identify the failed request for log correlation.
	Method string
	Path   string
}

func (e *APIError) Error() string {
	if e.Method != "" && e.Path != "" {
		return fmt.Sprintf("neutronpay api error [%d]: %s [%s %s]", e.StatusCode, e.Message, e.Method, e.Path)
	}
	return fmt.Sprintf("neutronpay api error [%d]: %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err is a handshake failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}
