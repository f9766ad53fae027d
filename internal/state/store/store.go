// Package store declares persistence for warm response payloads.
//
// The warm cache is a derived read optimization and never becomes the source
// of truth: entries carry a TTL, mutations mark their scopes stale, and a
// discarded store only costs an extra fetch.
package store

import (
	"context"
	"time"
)

// Cache scopes group entries invalidated together by a mutation.
const (
	ScopeCampaignSummary      = "campaign_summary"
	ScopeCampaignMembers      = "campaign_members"
	ScopeCampaignJoinRequests = "campaign_join_requests"
	ScopeSessionSummary       = "session_summary"
	ScopeSessionParticipants  = "session_participants"
)

// Entry stores one warm payload and its freshness metadata.
type Entry struct {
	CacheKey    string
	Scope       string
	CampaignID  int64
	SessionID   int64
	UserID      int64
	Payload     []byte
	Stale       bool
	RefreshedAt time.Time
	ExpiresAt   time.Time
}

// Fresh reports whether the entry is usable at the given instant.
func (e Entry) Fresh(now time.Time) bool {
	if e.Stale || len(e.Payload) == 0 {
		return false
	}
	return e.ExpiresAt.IsZero() || now.Before(e.ExpiresAt)
}

// Store is the contract for warm payload persistence.
type Store interface {
	Close() error
	Get(ctx context.Context, cacheKey string) (Entry, bool, error)
	Put(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, cacheKey string) error
	// MarkCampaignScopeStale flags every entry of one campaign scope so the
	// next read falls through to the remote service.
	MarkCampaignScopeStale(ctx context.Context, campaignID int64, scope string) error
	// MarkSessionScopeStale flags every entry of one session scope.
	MarkSessionScopeStale(ctx context.Context, sessionID int64, scope string) error
}
