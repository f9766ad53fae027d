// Package sqlite persists warm payloads in a local SQLite file so a restart
// can render from cached data while fresh fetches are in flight.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/partykeep/partykeep/internal/platform/storage/sqlitemigrate"
	"github.com/partykeep/partykeep/internal/state/store"
	"github.com/partykeep/partykeep/internal/state/store/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed persistence for warm cache entries.
type Store struct {
	sqlDB *sql.DB
}

// Open opens and migrates a warm cache SQLite store.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Get loads a cache payload and metadata by key.
func (s *Store) Get(ctx context.Context, cacheKey string) (store.Entry, bool, error) {
	if s == nil || s.sqlDB == nil {
		return store.Entry{}, false, fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return store.Entry{}, false, fmt.Errorf("cache key is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT cache_key, scope, campaign_id, session_id, user_id, payload_json, stale, refreshed_at, expires_at
		 FROM cache_entries
		 WHERE cache_key = ?`,
		cacheKey,
	)

	var entry store.Entry
	var staleInt int64
	var refreshedAt int64
	var expiresAt int64
	if err := row.Scan(
		&entry.CacheKey,
		&entry.Scope,
		&entry.CampaignID,
		&entry.SessionID,
		&entry.UserID,
		&entry.Payload,
		&staleInt,
		&refreshedAt,
		&expiresAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return store.Entry{}, false, nil
		}
		return store.Entry{}, false, fmt.Errorf("get cache entry: %w", err)
	}

	entry.Stale = staleInt != 0
	entry.RefreshedAt = unixMillisToTime(refreshedAt)
	entry.ExpiresAt = unixMillisToTime(expiresAt)
	return entry, true, nil
}

// Put upserts a cache payload and metadata by key.
func (s *Store) Put(ctx context.Context, entry store.Entry) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	entry.CacheKey = strings.TrimSpace(entry.CacheKey)
	if entry.CacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	entry.Scope = strings.TrimSpace(entry.Scope)
	if entry.Scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	if len(entry.Payload) == 0 {
		return fmt.Errorf("cache payload is required")
	}
	if entry.RefreshedAt.IsZero() {
		entry.RefreshedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO cache_entries (
		    cache_key, scope, campaign_id, session_id, user_id, payload_json, stale, refreshed_at, expires_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(cache_key) DO UPDATE SET
		    scope = excluded.scope,
		    campaign_id = excluded.campaign_id,
		    session_id = excluded.session_id,
		    user_id = excluded.user_id,
		    payload_json = excluded.payload_json,
		    stale = excluded.stale,
		    refreshed_at = excluded.refreshed_at,
		    expires_at = excluded.expires_at`,
		entry.CacheKey,
		entry.Scope,
		entry.CampaignID,
		entry.SessionID,
		entry.UserID,
		entry.Payload,
		boolToInt(entry.Stale),
		timeToUnixMillis(entry.RefreshedAt),
		timeToUnixMillis(entry.ExpiresAt),
	)
	if err != nil {
		return fmt.Errorf("put cache entry: %w", err)
	}
	return nil
}

// Delete removes a cache entry by key.
func (s *Store) Delete(ctx context.Context, cacheKey string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	cacheKey = strings.TrimSpace(cacheKey)
	if cacheKey == "" {
		return fmt.Errorf("cache key is required")
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_key = ?`, cacheKey); err != nil {
		return fmt.Errorf("delete cache entry: %w", err)
	}
	return nil
}

// MarkCampaignScopeStale marks cache rows stale for one campaign scope.
func (s *Store) MarkCampaignScopeStale(ctx context.Context, campaignID int64, scope string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if campaignID == 0 {
		return fmt.Errorf("campaign id is required")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE cache_entries SET stale = 1 WHERE campaign_id = ? AND scope = ?`,
		campaignID,
		scope,
	)
	if err != nil {
		return fmt.Errorf("mark campaign scope stale: %w", err)
	}
	return nil
}

// MarkSessionScopeStale marks cache rows stale for one session scope.
func (s *Store) MarkSessionScopeStale(ctx context.Context, sessionID int64, scope string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if sessionID == 0 {
		return fmt.Errorf("session id is required")
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return fmt.Errorf("cache scope is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE cache_entries SET stale = 1 WHERE session_id = ? AND scope = ?`,
		sessionID,
		scope,
	)
	if err != nil {
		return fmt.Errorf("mark session scope stale: %w", err)
	}
	return nil
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}

func timeToUnixMillis(value time.Time) int64 {
	if value.IsZero() {
		return 0
	}
	return value.UTC().UnixMilli()
}

func unixMillisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}

var _ store.Store = (*Store)(nil)
