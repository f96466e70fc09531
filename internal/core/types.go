package core

import (
	"strings"
	"time"
)

// Scope is a named OAuth permission grant on the osu! API.
type Scope string

const (
	ScopePublic      Scope = "public"
	ScopeIdentify    Scope = "identify"
	ScopeFriendsRead Scope = "friends.read"
	ScopeChatRead    Scope = "chat.read"
	ScopeChatWrite   Scope = "chat.write"
	ScopeForumWrite  Scope = "forum.write"
	ScopeDelegate    Scope = "delegate"
	ScopeLazer       Scope = "lazer"
)

// Scopes is an ordered set of scopes.
type Scopes []Scope

// Contains reports whether the set includes the given scope.
func (s Scopes) Contains(scope Scope) bool {
	for _, have := range s {
		if have == scope {
			return true
		}
	}
	return false
}

// Missing returns the scopes in required that are absent from s.
func (s Scopes) Missing(required Scopes) Scopes {
	var missing Scopes
	for _, want := range required {
		if !s.Contains(want) {
			missing = append(missing, want)
		}
	}
	return missing
}

func (s Scopes) String() string {
	parts := make([]string, 0, len(s))
	for _, scope := range s {
		parts = append(parts, string(scope))
	}
	return strings.Join(parts, " ")
}

// ParseScopes splits a space- or comma-separated scope list.
func ParseScopes(raw string) Scopes {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ','
	})

	var scopes Scopes
	for _, field := range fields {
		value := strings.TrimSpace(field)
		if value == "" {
			continue
		}
		scopes = append(scopes, Scope(value))
	}
	return scopes
}

// Endpoint describes one API operation: where it lives and what it demands.
// Values are immutable; construct them via the helpers in endpoints.go.
type Endpoint struct {
	Path         string
	RequiresAuth bool
	Scopes       Scopes
}

// Token is an access credential as read from a token source at dispatch time.
// An empty AccessToken means no credential is present.
type Token struct {
	AccessToken string
	Scopes      Scopes
	ExpiresAt   time.Time
}

// Valid reports whether the token carries a usable access token.
func (t *Token) Valid(now time.Time) bool {
	if t == nil || strings.TrimSpace(t.AccessToken) == "" {
		return false
	}
	if !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt) {
		return false
	}
	return true
}

// RateLimitSnapshot captures limiter state for persistence between runs.
type RateLimitSnapshot struct {
	LastRequest time.Time
	History     []time.Time
}
