package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osukit/osukit/internal/core"
)

// GetRateLimit returns the persisted limiter snapshot for an API host, or
// nil when none is stored.
func (s *Store) GetRateLimit(ctx context.Context, host string) (*core.RateLimitSnapshot, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("host is required")
	}

	var (
		lastRequest int64
		historyJSON string
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT last_request, history
		FROM rate_limits
		WHERE host = ?
	`, host)

	if err := row.Scan(&lastRequest, &historyJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch rate limit state: %w", err)
	}

	var stamps []int64
	if err := json.Unmarshal([]byte(historyJSON), &stamps); err != nil {
		return nil, fmt.Errorf("decode rate limit history: %w", err)
	}

	snapshot := &core.RateLimitSnapshot{
		LastRequest: time.UnixMilli(lastRequest).UTC(),
		History:     make([]time.Time, 0, len(stamps)),
	}
	for _, stamp := range stamps {
		snapshot.History = append(snapshot.History, time.UnixMilli(stamp).UTC())
	}
	return snapshot, nil
}

// SaveRateLimit persists a limiter snapshot for an API host.
func (s *Store) SaveRateLimit(ctx context.Context, host string, snapshot core.RateLimitSnapshot) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	host = strings.TrimSpace(host)
	if host == "" {
		return errors.New("host is required")
	}

	stamps := make([]int64, 0, len(snapshot.History))
	for _, entry := range snapshot.History {
		stamps = append(stamps, entry.UTC().UnixMilli())
	}

	historyJSON, err := json.Marshal(stamps)
	if err != nil {
		return fmt.Errorf("encode rate limit history: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO rate_limits (host, last_request, history)
		VALUES (?, ?, ?)
		ON CONFLICT(host) DO UPDATE SET
			last_request = excluded.last_request,
			history = excluded.history
	`, host, snapshot.LastRequest.UTC().UnixMilli(), string(historyJSON))
	if err != nil {
		return fmt.Errorf("store rate limit state: %w", err)
	}
	return nil
}

// RateLimitEntry is one persisted limiter row for the admin listing.
type RateLimitEntry struct {
	Host        string
	LastRequest time.Time
	Requests    int
}

// ListRateLimits returns all persisted limiter rows.
func (s *Store) ListRateLimits(ctx context.Context) ([]RateLimitEntry, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT host, last_request, history FROM rate_limits ORDER BY host`)
	if err != nil {
		return nil, fmt.Errorf("list rate limit state: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup

	var entries []RateLimitEntry
	for rows.Next() {
		var (
			host        string
			lastRequest int64
			historyJSON string
		)
		if err := rows.Scan(&host, &lastRequest, &historyJSON); err != nil {
			return nil, fmt.Errorf("scan rate limit row: %w", err)
		}

		var stamps []int64
		if err := json.Unmarshal([]byte(historyJSON), &stamps); err != nil {
			return nil, fmt.Errorf("decode rate limit history: %w", err)
		}

		entries = append(entries, RateLimitEntry{
			Host:        host,
			LastRequest: time.UnixMilli(lastRequest).UTC(),
			Requests:    len(stamps),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rate limit state: %w", err)
	}
	return entries, nil
}

// ResetRateLimit removes the persisted limiter row for a host. An empty host
// clears every row.
func (s *Store) ResetRateLimit(ctx context.Context, host string) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	host = strings.TrimSpace(host)
	if host == "" {
		_, err := s.DB.ExecContext(ctx, `DELETE FROM rate_limits`)
		if err != nil {
			return fmt.Errorf("reset rate limit state: %w", err)
		}
		return nil
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM rate_limits WHERE host = ?`, host); err != nil {
		return fmt.Errorf("reset rate limit state: %w", err)
	}
	return nil
}
