package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/osukit/osukit/internal/core"
)

// AuthRequiredError is returned when an endpoint demands authentication and
// no usable credential is present.
type AuthRequiredError struct {
	Path string
}

func (e *AuthRequiredError) Error() string {
	if e == nil || e.Path == "" {
		return "authentication required"
	}
	return fmt.Sprintf("authentication required for %s", e.Path)
}

// ScopeError is returned when the credential lacks scopes the endpoint
// requires. Missing always names the absent scope(s).
type ScopeError struct {
	Path    string
	Missing core.Scopes
	Granted core.Scopes
}

func (e *ScopeError) Error() string {
	if e == nil {
		return "insufficient scope"
	}
	return fmt.Sprintf("missing required scope %q for %s (granted: %q)", e.Missing.String(), e.Path, e.Granted.String())
}

// APIError is returned when the API responds with a non-2xx status. The body
// is carried verbatim; no retry or recovery is attempted here.
type APIError struct {
	StatusCode int
	Body       []byte
	Method     string
	Path       string
}

func (e *APIError) Error() string {
	if e == nil {
		return "api error"
	}
	body := strings.TrimSpace(string(e.Body))
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	if body == "" {
		return fmt.Sprintf("%s %s failed: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed: status %d: %s", e.Method, e.Path, e.StatusCode, body)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
