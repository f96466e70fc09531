package cmd

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/osukit/osukit/internal/observability"
)

// cachedLookup serves a lookup from the store when possible and caches fresh
// results. Cache failures degrade to a live fetch; they are never fatal.
func cachedLookup[T any](ctx context.Context, s *session, kind, key string, noCache bool, ttl time.Duration, fetch func(context.Context) (*T, error)) (*T, error) {
	if !noCache && s.store != nil {
		payload, err := s.store.GetCached(ctx, kind, key)
		if err != nil {
			observability.Logger().Warn("cache lookup failed", zap.String("kind", kind), zap.Error(err))
		} else if payload != nil {
			var value T
			if err := json.Unmarshal(payload, &value); err == nil {
				observability.Logger().Debug("cache hit", zap.String("kind", kind), zap.String("key", key))
				return &value, nil
			}
		}
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if s.store != nil && ttl > 0 {
		payload, err := json.Marshal(value)
		if err == nil {
			if err := s.store.SetCached(ctx, kind, key, payload, ttl); err != nil {
				observability.Logger().Warn("could not cache lookup", zap.String("kind", kind), zap.Error(err))
			}
		}
	}
	return value, nil
}
