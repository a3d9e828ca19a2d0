package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uniportal.org/internal/tokens"
)

func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()
	c, err := New(baseURL, opts...)
	require.NoError(t, err)
	return c
}

func TestRequestInterceptorAttachesHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, "the-access-token")
	c := newTestClient(t, srv.URL,
		WithTokenStore(store),
		WithCSRFToken("csrf-123"),
		WithLanguage("fr"),
	)

	require.NoError(t, c.Get(context.Background(), "/news", nil))
	assert.Equal(t, "Bearer the-access-token", got.Get("Authorization"))
	assert.Equal(t, "csrf-123", got.Get("X-CSRF-TOKEN"))
	assert.Equal(t, "fr", got.Get("Accept-Language"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get("X-Request-ID"))
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	require.NoError(t, c.Get(context.Background(), "/news", nil))
	assert.Empty(t, auth)
}

func TestUnauthorizedTriggersSingleRefreshAndRetry(t *testing.T) {
	var refreshCalls, newsCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		http.SetCookie(w, &http.Cookie{Name: tokens.AccessTokenName, Value: "fresh-token", Path: "/"})
		w.Write([]byte(`{"message":"Token refreshed"}`))
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		if newsCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":"Token has expired"}`))
			return
		}
		w.Write([]byte(`{"items":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, "stale-token")
	c := newTestClient(t, srv.URL, WithTokenStore(store))

	require.NoError(t, c.Get(context.Background(), "/news", nil))
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), newsCalls.Load())

	// The refreshed cookie was synced into the store.
	v, ok := store.Get(tokens.AccessTokenName)
	require.True(t, ok)
	assert.Equal(t, "fresh-token", v)
}

func TestSecondUnauthorizedDoesNotRefreshAgain(t *testing.T) {
	var refreshCalls, newsCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.Write([]byte(`{"message":"Token refreshed"}`))
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		newsCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"still unauthorized"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Get(context.Background(), "/news", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	// One refresh, one replay, then the rejection propagates: no loop.
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), newsCalls.Load())
}

func TestRefreshFailureClearsTokensAndPropagatesOriginalError(t *testing.T) {
	var refreshCalls, newsCalls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token refresh failed"}`))
	})
	mux.HandleFunc("/news", func(w http.ResponseWriter, r *http.Request) {
		newsCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token has expired"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	expired := false
	store := tokens.NewMemStore()
	store.Set(tokens.AccessTokenName, "a")
	store.Set(tokens.RefreshTokenName, "r")
	c := newTestClient(t, srv.URL,
		WithTokenStore(store),
		WithSessionExpiredHandler(func() { expired = true }),
	)

	err := c.Get(context.Background(), "/news", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	// The original request's message, not the refresh failure's.
	assert.Equal(t, "Token has expired", ErrorMessage(err, ""))

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(1), newsCalls.Load(), "no retry after refresh failure")
	assert.True(t, expired, "session-expired hook must fire")

	_, ok := store.Get(tokens.AccessTokenName)
	assert.False(t, ok, "access token must be cleared")
	_, ok = store.Get(tokens.RefreshTokenName)
	assert.False(t, ok, "refresh token must be cleared")
}

func TestForbiddenSurfacesPermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"Insufficient permissions"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Post(context.Background(), "/news", map[string]string{"title": "x"}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Equal(t, "Insufficient permissions", ErrorMessage(err, ""))
}

func TestRateLimitSurfacesWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limit exceeded"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Get(context.Background(), "/news", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

func TestValidationErrorCarriesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Name is required"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	err := c.Put(context.Background(), "/auth/profile", ProfileUpdate{}, nil)

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Name is required", apiErr.Message)
}

func TestNetworkFailurePropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(t, srv.URL)
	err := c.Get(context.Background(), "/news", nil)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "network failure is not an APIError")
}

func TestLoginSyncsCredentialCookiesIntoStore(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: tokens.AccessTokenName, Value: "acc-1", Path: "/"})
		http.SetCookie(w, &http.Cookie{Name: tokens.RefreshTokenName, Value: "ref-1", Path: "/"})
		w.Write([]byte(`{"message":"Login successful","user":{"id":1,"username":"amina","role":"super_admin"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := tokens.NewMemStore()
	c := newTestClient(t, srv.URL, WithTokenStore(store))

	resp, err := c.Auth().Login(context.Background(), Credentials{Username: "amina", Password: "pw"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "amina", resp.User.Username)
	assert.Equal(t, "1", resp.User.ID.String())

	v, ok := store.Get(tokens.AccessTokenName)
	require.True(t, ok)
	assert.Equal(t, "acc-1", v)
	v, ok = store.Get(tokens.RefreshTokenName)
	require.True(t, ok)
	assert.Equal(t, "ref-1", v)
}
