package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// GetCached returns the cached payload for a lookup if it is still valid.
// A nil byte slice with a nil error means a cache miss.
func (s *Store) GetCached(ctx context.Context, kind, key string) ([]byte, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	kind = strings.TrimSpace(kind)
	key = strings.TrimSpace(key)
	if kind == "" || key == "" {
		return nil, errors.New("cache kind and key are required")
	}

	var (
		payload   string
		expiresAt int64
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT payload, expires_at
		FROM lookup_cache
		WHERE kind = ? AND key = ?
	`, kind, key)

	if err := row.Scan(&payload, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch cached lookup: %w", err)
	}

	if time.Now().UTC().Unix() >= expiresAt {
		return nil, nil
	}
	return []byte(payload), nil
}

// SetCached stores a lookup payload with the given TTL. Non-positive TTLs
// are ignored.
func (s *Store) SetCached(ctx context.Context, kind, key string, payload []byte, ttl time.Duration) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if ttl <= 0 {
		return nil
	}

	kind = strings.TrimSpace(kind)
	key = strings.TrimSpace(key)
	if kind == "" || key == "" {
		return errors.New("cache kind and key are required")
	}

	now := time.Now().UTC()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO lookup_cache (kind, key, payload, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(kind, key) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`, kind, key, string(payload), now.Unix(), now.Add(ttl).Unix())
	if err != nil {
		return fmt.Errorf("store cached lookup: %w", err)
	}
	return nil
}

// PruneExpired removes cache rows past their expiry.
func (s *Store) PruneExpired(ctx context.Context) (int64, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM lookup_cache WHERE expires_at <= ?`, time.Now().UTC().Unix())
	if err != nil {
		return 0, fmt.Errorf("prune lookup cache: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}
