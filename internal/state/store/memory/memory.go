// Package memory offers an in-process warm payload store, used when no cache
// path is configured and as a stand-in for the sqlite store in tests.
package memory

import (
	"context"
	"sync"

	"github.com/partykeep/partykeep/internal/state/store"
)

// Store keeps entries in a map guarded by a mutex.
type Store struct {
	mu      sync.Mutex
	entries map[string]store.Entry
}

// New returns an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]store.Entry)}
}

// Close releases no resources; it satisfies the store contract.
func (s *Store) Close() error { return nil }

// Get returns the entry stored under cacheKey.
func (s *Store) Get(_ context.Context, cacheKey string) (store.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[cacheKey]
	return entry, ok, nil
}

// Put stores the entry, replacing any previous payload under its key.
func (s *Store) Put(_ context.Context, entry store.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.CacheKey] = entry
	return nil
}

// Delete removes the entry stored under cacheKey.
func (s *Store) Delete(_ context.Context, cacheKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, cacheKey)
	return nil
}

// MarkCampaignScopeStale flags every entry of the campaign scope.
func (s *Store) MarkCampaignScopeStale(_ context.Context, campaignID int64, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.CampaignID == campaignID && entry.Scope == scope {
			entry.Stale = true
			s.entries[key] = entry
		}
	}
	return nil
}

// MarkSessionScopeStale flags every entry of the session scope.
func (s *Store) MarkSessionScopeStale(_ context.Context, sessionID int64, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.entries {
		if entry.SessionID == sessionID && entry.Scope == scope {
			entry.Stale = true
			s.entries[key] = entry
		}
	}
	return nil
}
