package neutronpay

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const tokenSignaturePath = "/api/v2/authentication/token-signature"

// sessionTTL is the fallback validity window when the handshake response
// carries no expiry.
const sessionTTL = time.Hour

// authProbe is the fixed payload signed and POSTed during the handshake.
type authProbe struct {
	Test string `json:"test"`
}

// SessionManager bootstraps and caches the process-wide Session. The cached
// token is reused until its expiry passes; expired or absent sessions trigger
// a fresh handshake. Concurrent callers racing on an absent session share a
// single in-flight handshake rather than each performing their own.
//
// SessionManager is safe for concurrent use.
type SessionManager struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu      sync.Mutex
	session *Session

	group singleflight.Group

	// now is wall-clock time, replaceable in tests.
	now func() time.Time
}

// NewSessionManager creates a session manager for the given credentials.
// An empty Credentials.BaseURL falls back to DefaultBaseURL.
func NewSessionManager(creds Credentials, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		creds:      creds,
		baseURL:    creds.BaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
		now:        time.Now,
	}
	if m.baseURL == "" {
		m.baseURL = DefaultBaseURL
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SessionOption is a functional option for configuring a SessionManager.
type SessionOption func(*SessionManager)

// WithSessionHTTPClient overrides the HTTP client used for the handshake.
func WithSessionHTTPClient(c *http.Client) SessionOption {
	return func(m *SessionManager) { m.httpClient = c }
}

// WithSessionLogger attaches a logger to the session manager.
func WithSessionLogger(l zerolog.Logger) SessionOption {
	return func(m *SessionManager) { m.logger = l }
}

// EnsureAuthenticated returns the cached session when it is still valid,
// performing the token-signature handshake otherwise. The valid-cache path
// makes no network call; it runs before every API request.
func (m *SessionManager) EnsureAuthenticated(ctx context.Context) (Session, error) {
	m.mu.Lock()
	if s := m.session; s != nil && m.now().UnixMilli() < s.ExpiresAt {
		cached := *s
		m.mu.Unlock()
		return cached, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do("handshake", func() (interface{}, error) {
		session, err := m.bootstrap(ctx)
		if err != nil {
			return nil, err
		}
		return session, nil
	})
	if err != nil {
		return Session{}, err
	}
	return v.(Session), nil
}

// ForceReauthenticate discards any cached session and performs a fresh
// handshake unconditionally. This is the explicit "verify my credentials"
// operation, distinct from the lazy refresh EnsureAuthenticated applies.
func (m *SessionManager) ForceReauthenticate(ctx context.Context) (Session, error) {
	m.mu.Lock()
	m.session = nil
	m.mu.Unlock()
	return m.bootstrap(ctx)
}

// bootstrap runs the handshake and overwrites the cached session on success.
func (m *SessionManager) bootstrap(ctx context.Context) (Session, error) {
	if m.creds.APIKey == "" || m.creds.APISecret == "" {
		return Session{}, ErrMissingCredentials
	}

	payload, err := json.Marshal(authProbe{Test: "auth"})
	if err != nil {
		return Session{}, err
	}
	signature := Sign(m.creds.APIKey, m.creds.APISecret, string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+tokenSignaturePath, bytes.NewReader(payload))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", m.creds.APIKey)
	req.Header.Set("X-Api-Signature", signature)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return Session{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		var errBody struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = errBody.Message
		}
		m.logger.Warn().Int("status", resp.StatusCode).Msg("token handshake rejected")
		return Session{}, &AuthError{StatusCode: resp.StatusCode, Message: msg}
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, err
	}
	if session.ExpiresAt == 0 {
		session.ExpiresAt = m.now().Add(sessionTTL).UnixMilli()
	}

	m.mu.Lock()
	m.session = &session
	m.mu.Unlock()

	m.logger.Debug().Str("accountId", session.AccountID).Int64("expiresAt", session.ExpiresAt).Msg("session established")
	return session, nil
}
