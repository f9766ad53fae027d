package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/partykeep/partykeep/internal/state/store"
)

// Warm cache TTLs: detail payloads survive navigation, lists go stale fast
// because rosters change under other users' actions.
const (
	detailTTL = 5 * time.Minute
	listTTL   = 30 * time.Second
)

func campaignSummaryKey(campaignID int64) string {
	return fmt.Sprintf("campaign:%d:summary", campaignID)
}

func campaignMembersKey(campaignID int64) string {
	return fmt.Sprintf("campaign:%d:members", campaignID)
}

func campaignListKey(userID int64) string {
	return fmt.Sprintf("user:%d:campaigns", userID)
}

func sessionSummaryKey(sessionID int64) string {
	return fmt.Sprintf("session:%d:summary", sessionID)
}

func sessionParticipantsKey(sessionID int64) string {
	return fmt.Sprintf("session:%d:participants", sessionID)
}

// readWarm decodes a fresh warm payload into out. A stale, expired, or
// missing entry is a miss; store failures degrade to a miss as well.
func readWarm(ctx context.Context, warm store.Store, cacheKey string, now time.Time, out any) bool {
	if warm == nil {
		return false
	}
	entry, ok, err := warm.Get(ctx, cacheKey)
	if err != nil {
		log.Printf("warm cache get %s: %v", cacheKey, err)
		return false
	}
	if !ok || !entry.Fresh(now) {
		return false
	}
	if err := json.Unmarshal(entry.Payload, out); err != nil {
		log.Printf("warm cache decode %s: %v", cacheKey, err)
		return false
	}
	return true
}

// writeWarm stores a payload under the given key and scope. The warm cache
// is best effort; failures are logged and never fail the action.
func writeWarm(ctx context.Context, warm store.Store, entry store.Entry, value any, now time.Time, ttl time.Duration) {
	if warm == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("warm cache encode %s: %v", entry.CacheKey, err)
		return
	}
	entry.Payload = payload
	entry.RefreshedAt = now
	entry.ExpiresAt = now.Add(ttl)
	if err := warm.Put(ctx, entry); err != nil {
		log.Printf("warm cache put %s: %v", entry.CacheKey, err)
	}
}

func staleCampaignScope(ctx context.Context, warm store.Store, campaignID int64, scope string) {
	if warm == nil {
		return
	}
	if err := warm.MarkCampaignScopeStale(ctx, campaignID, scope); err != nil {
		log.Printf("warm cache invalidate campaign %d %s: %v", campaignID, scope, err)
	}
}

func staleSessionScope(ctx context.Context, warm store.Store, sessionID int64, scope string) {
	if warm == nil {
		return
	}
	if err := warm.MarkSessionScopeStale(ctx, sessionID, scope); err != nil {
		log.Printf("warm cache invalidate session %d %s: %v", sessionID, scope, err)
	}
}
