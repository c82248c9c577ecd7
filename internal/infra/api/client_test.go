package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"beacon/config"
	"beacon/internal/domain/entity"
	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/errors"
	"beacon/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory session.Storage for tests.
type memStorage struct {
	mu    sync.Mutex
	state *entity.Session
}

func (m *memStorage) Load() (entity.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return entity.Session{}, nil
	}

	return *m.state, nil
}

func (m *memStorage) Save(state entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = &state

	return nil
}

func (m *memStorage) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = nil

	return nil
}

func newTestClient(t *testing.T, baseURL string) (*Client, *session.Store) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := session.New(&memStorage{}, logger)

	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.Timeout = 5 * time.Second
	cfg.API.UserAgent = "beacon-test"
	cfg.Session = &config.SessionConfig{Path: "unused", RefreshLeeway: 30 * time.Second}

	client, err := New(cfg, store, logger)
	require.NoError(t, err)

	return client, store
}

func seedSession(store *session.Store, accessToken, refreshToken string) {
	store.SetSession(&entity.User{ID: "u1", Username: "alice"}, accessToken, refreshToken)
}

func TestClient_ConcurrentAuthFailures_SingleRefresh(t *testing.T) {
	var refreshCalls atomic.Int32
	var replayAuth sync.Map

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		// Slow refresh so every concurrent failure joins the same flight.
		time.Sleep(100 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access":"at2"}`))
	})
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth != "Bearer at2" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"token expired"}`))

			return
		}
		replayAuth.Store(r.Header.Get("X-Request-ID"), auth)
		w.Write([]byte(`[{"id":"i1","title":"Broken light","description":"d"}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedSession(store, "at1", "rt1")

	const concurrency = 5
	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var incidents []entity.Incident
			errs[i] = client.Get(context.Background(), "incidents/", &incidents)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d", i)
	}
	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh call for all concurrent failures")
	assert.Equal(t, "at2", store.AccessToken())

	replays := 0
	replayAuth.Range(func(_, value any) bool {
		assert.Equal(t, "Bearer at2", value)
		replays++

		return true
	})
	assert.Equal(t, concurrency, replays, "every original request replayed with the new token")
}

func TestClient_RefreshFailure_ClearsSessionAndRejectsAll(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"refresh token invalid"}`))
	})
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedSession(store, "at1", "rt1")

	var hookFired atomic.Bool
	client.SetAuthFailureHandler(func() { hookFired.Store(true) })

	const concurrency = 3
	var wg sync.WaitGroup
	errs := make([]error, concurrency)
	for i := range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "incidents/", nil)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		require.Error(t, err, "request %d", i)
		assert.True(t, errors.Is(err, domainerrors.ErrSessionExpired), "request %d: %v", i, err)
	}

	snap := store.Snapshot()
	assert.False(t, snap.IsAuthenticated)
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.AccessToken)
	assert.Empty(t, snap.RefreshToken)
	assert.True(t, hookFired.Load())
}

func TestClient_RetriedRequestNotRetriedTwice(t *testing.T) {
	var resourceCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"access":"at2"}`))
	})
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		resourceCalls.Add(1)
		// Always 401, even with the renewed token.
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"still unauthorized"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedSession(store, "at1", "rt1")

	err := client.Get(context.Background(), "incidents/", nil)
	require.Error(t, err)

	apiErr, ok := domainerrors.AsAPIError(err)
	require.True(t, ok, "the second 401 propagates as-is: %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(2), resourceCalls.Load(), "original attempt plus exactly one replay")
	assert.Equal(t, int32(1), refreshCalls.Load())
}

func TestClient_NoRefreshToken_FailsWithoutRefreshCall(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"access":"at2"}`))
	})
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"forbidden"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	store.SetSession(&entity.User{ID: "u1"}, "at1", "")

	var hookFired atomic.Bool
	client.SetAuthFailureHandler(func() { hookFired.Store(true) })

	err := client.Get(context.Background(), "incidents/", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoRefreshToken))
	assert.Equal(t, int32(0), refreshCalls.Load())
	assert.True(t, hookFired.Load())
	assert.False(t, store.Snapshot().IsAuthenticated)
}

func TestClient_PublicRequestSkipsAuthAndRefresh(t *testing.T) {
	var refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
	})
	mux.HandleFunc("/public/incidents/", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"not allowed"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedSession(store, "at1", "rt1")

	err := client.Get(context.Background(), "public/incidents/", nil, Public())
	require.Error(t, err)

	apiErr, ok := domainerrors.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, int32(0), refreshCalls.Load(), "public failures never touch the refresh machinery")
	assert.True(t, store.Snapshot().IsAuthenticated, "session untouched")
}

func TestClient_HandlerRegistrationDuringInFlightFailures(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"refresh token invalid"}`))
	})
	mux.HandleFunc("/incidents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)

	var fired atomic.Int32
	client.SetAuthFailureHandler(func() { fired.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 8; j++ {
				client.SetAuthFailureHandler(func() { fired.Add(1) })
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			seedSession(store, "at1", "rt1")
			_ = client.Get(context.Background(), "incidents/", nil)
		}()
	}
	wg.Wait()

	assert.Positive(t, fired.Load(), "failures observe a registered handler")
}

func TestClient_BearerReadFreshAtSendTime(t *testing.T) {
	var seen []string
	var mu sync.Mutex

	mux := http.NewServeMux()
	mux.HandleFunc("/notifications/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.Header.Get("Authorization"))
		mu.Unlock()
		w.Write([]byte(`[]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, store := newTestClient(t, server.URL)
	seedSession(store, "first", "rt1")

	require.NoError(t, client.Get(context.Background(), "notifications/", nil))
	store.SetAccessToken("second")
	require.NoError(t, client.Get(context.Background(), "notifications/", nil))

	assert.Equal(t, []string{"Bearer first", "Bearer second"}, seen)
}

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "detail string",
			status:  401,
			body:    `{"detail":"Invalid credentials"}`,
			wantMsg: "Invalid credentials",
		},
		{
			name:    "field error map picks first sorted key",
			status:  400,
			body:    `{"username":["already taken"],"email":["invalid address"]}`,
			wantMsg: "invalid address",
		},
		{
			name:    "scalar field value",
			status:  400,
			body:    `{"password":"too short"}`,
			wantMsg: "too short",
		},
		{
			name:    "empty body falls back to status text",
			status:  502,
			body:    "",
			wantMsg: "server returned 502 Bad Gateway",
		},
		{
			name:    "unparseable body falls back to status text",
			status:  500,
			body:    "<html>boom</html>",
			wantMsg: "server returned 500 Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := parseAPIError(tt.status, []byte(tt.body))
			assert.Equal(t, tt.wantMsg, apiErr.Error())
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}
