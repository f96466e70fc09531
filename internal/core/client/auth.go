package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osukit/osukit/internal/core"
)

// TokenSource supplies the credential read at dispatch time. The dispatcher
// never caches what it returns; freshness is the source's responsibility.
type TokenSource interface {
	Token(ctx context.Context) (*core.Token, error)
}

type staticTokenSource struct {
	token core.Token
}

// StaticTokenSource wraps a fixed access token and its granted scopes.
func StaticTokenSource(accessToken string, scopes ...core.Scope) TokenSource {
	return &staticTokenSource{token: core.Token{
		AccessToken: strings.TrimSpace(accessToken),
		Scopes:      core.Scopes(scopes),
	}}
}

func (s *staticTokenSource) Token(ctx context.Context) (*core.Token, error) {
	token := s.token
	return &token, nil
}

// expiryMargin keeps a cached token from being handed out moments before it
// lapses server-side.
const expiryMargin = 30 * time.Second

// ClientCredentialsSource obtains tokens through the OAuth client
// credentials grant and caches them until shortly before expiry.
type ClientCredentialsSource struct {
	ClientID     int
	ClientSecret string
	TokenURL     string
	Scopes       core.Scopes
	HTTPClient   *http.Client
	Clock        func() time.Time

	mu     sync.Mutex
	cached *core.Token
}

// Token returns the cached token or fetches a fresh one.
func (s *ClientCredentialsSource) Token(ctx context.Context) (*core.Token, error) {
	if s == nil {
		return nil, fmt.Errorf("token source is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.cached != nil && s.cached.Valid(now.Add(expiryMargin)) {
		token := *s.cached
		return &token, nil
	}

	token, err := s.fetch(ctx, now)
	if err != nil {
		return nil, err
	}

	s.cached = token
	copied := *token
	return &copied, nil
}

func (s *ClientCredentialsSource) fetch(ctx context.Context, now time.Time) (*core.Token, error) {
	scopes := s.Scopes
	if len(scopes) == 0 {
		scopes = core.Scopes{core.ScopePublic}
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", strconv.Itoa(s.ClientID))
	form.Set("client_secret", s.ClientSecret)
	form.Set("scope", scopes.String())

	tokenURL := strings.TrimSpace(s.TokenURL)
	if tokenURL == "" {
		tokenURL = core.DefaultTokenURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := s.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body, Method: http.MethodPost, Path: "/oauth/token"}
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
		Scope       string `json:"scope"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if strings.TrimSpace(parsed.AccessToken) == "" {
		return nil, fmt.Errorf("token response carried no access token")
	}

	granted := scopes
	if strings.TrimSpace(parsed.Scope) != "" {
		granted = core.ParseScopes(parsed.Scope)
	}

	token := &core.Token{
		AccessToken: parsed.AccessToken,
		Scopes:      granted,
	}
	if parsed.ExpiresIn > 0 {
		token.ExpiresAt = now.Add(time.Duration(parsed.ExpiresIn) * time.Second)
	}
	return token, nil
}

func (s *ClientCredentialsSource) now() time.Time {
	if s != nil && s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}
