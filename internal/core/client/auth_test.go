package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osukit/osukit/internal/core"
)

func TestStaticTokenSource(t *testing.T) {
	source := StaticTokenSource("secret", core.ScopePublic, core.ScopeIdentify)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "secret", token.AccessToken)
	require.True(t, token.Scopes.Contains(core.ScopeIdentify))
	require.True(t, token.Valid(time.Now()))
}

func TestClientCredentialsFetchAndCache(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		require.Equal(t, "1234", r.PostForm.Get("client_id"))
		require.Equal(t, "hunter2", r.PostForm.Get("client_secret"))
		require.Equal(t, "public", r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"granted","token_type":"Bearer","expires_in":86400}`))
	}))
	defer server.Close()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	source := &ClientCredentialsSource{
		ClientID:     1234,
		ClientSecret: "hunter2",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
		Clock:        func() time.Time { return now },
	}

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "granted", token.AccessToken)
	require.Equal(t, core.Scopes{core.ScopePublic}, token.Scopes)
	require.Equal(t, now.Add(86400*time.Second), token.ExpiresAt)

	// Second read is served from cache.
	_, err = source.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), calls.Load())

	// Past expiry the token is fetched again.
	now = now.Add(87000 * time.Second)
	_, err = source.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
}

func TestClientCredentialsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer server.Close()

	source := &ClientCredentialsSource{
		ClientID:     1234,
		ClientSecret: "wrong",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
	}

	_, err := source.Token(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClientCredentialsGrantedScopesFromResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"access_token":"granted","expires_in":3600,"scope":"public identify"}`))
	}))
	defer server.Close()

	source := &ClientCredentialsSource{
		ClientID:     1234,
		ClientSecret: "hunter2",
		TokenURL:     server.URL,
		HTTPClient:   server.Client(),
	}

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, core.Scopes{core.ScopePublic, core.ScopeIdentify}, token.Scopes)
}
