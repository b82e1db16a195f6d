package neutronpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// newHandshakeServer returns a token endpoint that counts handshakes.
func newHandshakeServer(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var count atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != tokenSignaturePath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		count.Add(1)
		respond(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &count
}

func testCredentials(baseURL string) Credentials {
	return Credentials{APIKey: "test-key", APISecret: "test-secret", BaseURL: baseURL}
}

func TestEnsureAuthenticatedSendsSignedProbe(t *testing.T) {
	server, _ := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q, want test-key", got)
		}
		wantSig := Sign("test-key", "test-secret", `{"test":"auth"}`)
		if got := r.Header.Get("X-Api-Signature"); got != wantSig {
			t.Errorf("X-Api-Signature = %q, want %q", got, wantSig)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("handshake must not carry a bearer token, got %q", got)
		}
		var probe map[string]string
		if err := json.NewDecoder(r.Body).Decode(&probe); err != nil || probe["test"] != "auth" {
			t.Errorf("unexpected probe body %v (err %v)", probe, err)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"accountId":   "acct-1",
			"accessToken": "tok-1",
			"expiredAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	session, err := m.EnsureAuthenticated(context.Background())
	if err != nil {
		t.Fatalf("EnsureAuthenticated: %v", err)
	}
	if session.AccountID != "acct-1" || session.AccessToken != "tok-1" {
		t.Errorf("unexpected session %+v", session)
	}
}

func TestEnsureAuthenticatedCachesSession(t *testing.T) {
	server, count := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"accountId":   "acct-1",
			"accessToken": "tok-1",
			"expiredAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	for i := 0; i < 3; i++ {
		if _, err := m.EnsureAuthenticated(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if got := count.Load(); got != 1 {
		t.Errorf("handshake count = %d, want 1 (cached session must not hit the network)", got)
	}
}

func TestEnsureAuthenticatedRefreshesExpiredSession(t *testing.T) {
	var token atomic.Int64
	server, count := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		n := token.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"accountId":   "acct-1",
			"accessToken": "tok-" + string(rune('0'+n)),
			"expiredAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	first, err := m.EnsureAuthenticated(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// Move the wall clock past expiry.
	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	second, err := m.EnsureAuthenticated(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count.Load() != 2 {
		t.Errorf("handshake count = %d, want 2", count.Load())
	}
	if first.AccessToken == second.AccessToken {
		t.Error("expired session was not replaced")
	}
}

func TestEnsureAuthenticatedDefaultsExpiryToOneHour(t *testing.T) {
	server, _ := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		// No expiredAt field in the response.
		json.NewEncoder(w).Encode(map[string]string{
			"accountId":   "acct-1",
			"accessToken": "tok-1",
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	base := time.Now()
	m.now = func() time.Time { return base }

	session, err := m.EnsureAuthenticated(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := base.Add(time.Hour).UnixMilli(); session.ExpiresAt != want {
		t.Errorf("ExpiresAt = %d, want %d", session.ExpiresAt, want)
	}
}

func TestForceReauthenticateAlwaysHandshakes(t *testing.T) {
	server, count := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"accountId":   "acct-1",
			"accessToken": "tok-1",
			"expiredAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	if _, err := m.EnsureAuthenticated(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The session is still perfectly valid; force must handshake anyway.
	if _, err := m.ForceReauthenticate(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := count.Load(); got != 2 {
		t.Errorf("handshake count = %d, want 2", got)
	}
}

func TestEnsureAuthenticatedFailure(t *testing.T) {
	server, count := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid api key"})
	})

	m := NewSessionManager(testCredentials(server.URL))
	_, err := m.EnsureAuthenticated(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *AuthError, got %T", err)
	}
	if authErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", authErr.StatusCode)
	}
	if authErr.Message != "invalid api key" {
		t.Errorf("Message = %q, want server-supplied message", authErr.Message)
	}

	// A failed handshake leaves the manager unauthenticated: the next call
	// retries instead of serving a poisoned cache.
	_, _ = m.EnsureAuthenticated(context.Background())
	if got := count.Load(); got != 2 {
		t.Errorf("handshake count = %d, want 2 (failure must not be cached)", got)
	}
}

func TestEnsureAuthenticatedMissingCredentials(t *testing.T) {
	m := NewSessionManager(Credentials{})
	_, err := m.EnsureAuthenticated(context.Background())
	if !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestConcurrentBootstrapSharesOneHandshake(t *testing.T) {
	server, count := newHandshakeServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"accountId":   "acct-1",
			"accessToken": "tok-1",
			"expiredAt":   time.Now().Add(time.Hour).UnixMilli(),
		})
	})

	m := NewSessionManager(testCredentials(server.URL))
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.EnsureAuthenticated(context.Background()); err != nil {
				t.Errorf("EnsureAuthenticated: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := count.Load(); got != 1 {
		t.Errorf("handshake count = %d, want 1 (concurrent callers must share one handshake)", got)
	}
}
