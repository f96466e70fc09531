package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osukit/osukit/internal/core"
	"github.com/osukit/osukit/internal/core/engine"
)

func newTestClient(serverURL string, auth TokenSource) *Client {
	c := New(serverURL, auth, &engine.Limiter{})
	return c
}

func TestClientRequiresCredential(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	limiter := &engine.Limiter{}
	c := New(server.URL, nil, limiter)
	c.HTTPClient = server.Client()

	err := c.Get(context.Background(), core.UserEndpoint("peppy"), nil)

	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, int64(0), calls.Load())
	require.Empty(t, limiter.Snapshot().History)
}

func TestClientRejectsEmptyToken(t *testing.T) {
	c := newTestClient("http://127.0.0.1:0", StaticTokenSource(""))

	err := c.Get(context.Background(), core.UserEndpoint("peppy"), nil)

	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
}

func TestClientRejectsMissingScope(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	limiter := &engine.Limiter{}
	c := New(server.URL, StaticTokenSource("token", core.ScopePublic), limiter)
	c.HTTPClient = server.Client()

	_, err := c.Me(context.Background())

	var scopeErr *ScopeError
	require.ErrorAs(t, err, &scopeErr)
	require.Equal(t, core.Scopes{core.ScopeIdentify}, scopeErr.Missing)
	require.Contains(t, err.Error(), "identify")
	require.Equal(t, int64(0), calls.Load())
	require.Empty(t, limiter.Snapshot().History)
}

func TestClientScopeSubset(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":2,"username":"peppy"}`))
	}))
	defer server.Close()

	// Granted scopes are a strict superset of what the endpoint needs.
	c := newTestClient(server.URL, StaticTokenSource("token", core.ScopePublic, core.ScopeIdentify, core.ScopeFriendsRead))
	c.HTTPClient = server.Client()

	user, err := c.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "peppy", user.Username)
}

func TestClientHeaderMerge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer real-token", r.Header.Get("Authorization"))
		require.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		require.Empty(t, r.Header.Get("X-Empty"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, StaticTokenSource("real-token", core.ScopePublic))
	c.HTTPClient = server.Client()

	err := c.Get(context.Background(), core.UserEndpoint("peppy"), nil,
		WithHeader("Content-Type", "application/json; charset=utf-8"),
		WithHeader("X-Empty", ""),
		WithHeader("Authorization", "Bearer forged"),
	)
	require.NoError(t, err)
}

func TestClientRecordsUsageOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}))
	defer server.Close()

	limiter := &engine.Limiter{}
	c := New(server.URL, StaticTokenSource("token", core.ScopePublic), limiter)
	c.HTTPClient = server.Client()

	_, err := c.LookupUser(context.Background(), "nobody", "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.True(t, IsNotFound(err))

	// The request was sent, so it counts.
	require.Len(t, limiter.Snapshot().History, 1)
}

func TestClientCancelledWaitSkipsRequest(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	limiter := &engine.Limiter{MinInterval: time.Minute}
	limiter.Record()

	c := New(server.URL, StaticTokenSource("token", core.ScopePublic), limiter)
	c.HTTPClient = server.Client()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, core.UserEndpoint("peppy"), nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, int64(0), calls.Load())
	require.Len(t, limiter.Snapshot().History, 1)
}

func TestClientRateGateSpacesRequests(t *testing.T) {
	var hits []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits = append(hits, time.Now())
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	limiter := &engine.Limiter{MinInterval: 30 * time.Millisecond, MaxPerWindow: 2, Window: 500 * time.Millisecond}
	c := New(server.URL, StaticTokenSource("token", core.ScopePublic), limiter)
	c.HTTPClient = server.Client()

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Get(context.Background(), core.UserEndpoint("peppy"), nil))
	}

	require.Len(t, hits, 3)
	require.GreaterOrEqual(t, hits[2].Sub(hits[1]), 30*time.Millisecond)
}

func TestClientPostEncodesBody(t *testing.T) {
	type payload struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var got payload
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, "hello", got.Message)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, StaticTokenSource("token", core.ScopePublic))
	c.HTTPClient = server.Client()

	endpoint := core.Endpoint{Path: "/chat/new", RequiresAuth: true, Scopes: core.Scopes{core.ScopePublic}}
	err := c.Post(context.Background(), endpoint, nil, WithBody(payload{Message: "hello"}))
	require.NoError(t, err)
}

func TestClientQueryParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/beatmaps/lookup", r.URL.Path)
		require.Equal(t, "abc123", r.URL.Query().Get("checksum"))
		_, _ = w.Write([]byte(`{"id":53,"beatmapset_id":3}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, StaticTokenSource("token", core.ScopePublic))
	c.HTTPClient = server.Client()

	beatmap, err := c.LookupBeatmapChecksum(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, 53, beatmap.ID)
}

func TestClientUnauthenticatedEndpointSkipsAuth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, nil)
	c.HTTPClient = server.Client()

	endpoint := core.Endpoint{Path: "/ping"}
	require.NoError(t, c.Get(context.Background(), endpoint, nil))
}
