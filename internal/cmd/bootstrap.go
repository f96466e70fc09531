package cmd

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/osukit/osukit/internal/config"
	"github.com/osukit/osukit/internal/core/client"
	"github.com/osukit/osukit/internal/core/engine"
	"github.com/osukit/osukit/internal/core/store"
	"github.com/osukit/osukit/internal/observability"
)

// session wires the client, limiter, and store for one CLI invocation. The
// limiter snapshot is restored from the store on open and persisted back on
// close so consecutive invocations share the same sliding window.
type session struct {
	cfg     *config.Config
	store   *store.Store
	limiter *engine.Limiter
	client  *client.Client
	host    string
}

func newSession(ctx context.Context) (*session, error) {
	cfg := config.Get()

	limiter := &engine.Limiter{
		MinInterval:  cfg.RateLimit.MinInterval,
		MaxPerWindow: cfg.RateLimit.MaxPerMinute,
	}

	s := &session{
		cfg:     cfg,
		limiter: limiter,
		host:    apiHost(cfg.API.BaseURL),
	}

	// A broken store degrades to uncached, unpersisted operation.
	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		observability.Logger().Warn("store unavailable, continuing without cache", zap.Error(err))
	} else if err := st.Migrate(ctx); err != nil {
		observability.Logger().Warn("store migration failed, continuing without cache", zap.Error(err))
		_ = st.Close()
	} else {
		s.store = st
	}

	if s.store != nil {
		if snapshot, err := s.store.GetRateLimit(ctx, s.host); err == nil && snapshot != nil {
			limiter.Restore(*snapshot)
		}
	}

	// Without credentials the client stays unauthenticated and reports
	// AuthRequiredError instead of posting an empty grant.
	var auth client.TokenSource
	if cfg.API.ClientID != 0 && cfg.API.ClientSecret != "" {
		auth = &client.ClientCredentialsSource{
			ClientID:     cfg.API.ClientID,
			ClientSecret: cfg.API.ClientSecret,
			TokenURL:     cfg.API.TokenURL,
		}
	}

	c := client.New(cfg.API.BaseURL, auth, limiter)
	c.Logger = observability.Logger()
	c.UserAgent = cfg.API.UserAgent
	if cfg.API.Timeout > 0 {
		c.HTTPClient = &http.Client{Timeout: cfg.API.Timeout}
	}
	s.client = c

	return s, nil
}

// Close persists the limiter snapshot and releases the store.
func (s *session) Close(ctx context.Context) {
	if s == nil || s.store == nil {
		return
	}

	if err := s.store.SaveRateLimit(ctx, s.host, s.limiter.Snapshot()); err != nil {
		observability.Logger().Warn("could not persist rate limit state", zap.Error(err))
	}
	if err := s.store.Close(); err != nil {
		observability.Logger().Warn("could not close store", zap.Error(err))
	}
}

func apiHost(baseURL string) string {
	if parsed, err := url.Parse(strings.TrimSpace(baseURL)); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return "osu.ppy.sh"
}
