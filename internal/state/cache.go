package state

import "sync"

// Cache is the entity snapshot cache keyed by entity id.
//
// One campaign and one session may be "current" at a time, mirroring the
// page the user is on. Events targeting any other id are stale leftovers
// from a previous navigation and are rejected, never folded.
type Cache struct {
	mu sync.Mutex

	campaignTarget int64
	sessionTarget  int64
	campaigns      map[int64]CampaignSnapshot
	sessions       map[int64]SessionSnapshot
}

// NewCache creates an empty snapshot cache.
func NewCache() *Cache {
	return &Cache{
		campaigns: make(map[int64]CampaignSnapshot),
		sessions:  make(map[int64]SessionSnapshot),
	}
}

// SetCampaignTarget marks campaignID as the entity currently of interest.
func (c *Cache) SetCampaignTarget(campaignID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.campaignTarget = campaignID
	if _, ok := c.campaigns[campaignID]; !ok {
		c.campaigns[campaignID] = CampaignSnapshot{}
	}
}

// CampaignTarget returns the campaign id currently of interest, zero when none.
func (c *Cache) CampaignTarget() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.campaignTarget
}

// ApplyCampaign folds an event into the targeted campaign snapshot.
//
// It reports false without mutating anything when campaignID is no longer
// the current target (the stale-fetch case).
func (c *Cache) ApplyCampaign(campaignID int64, evt CampaignEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if campaignID == 0 || campaignID != c.campaignTarget {
		return false
	}
	c.campaigns[campaignID] = FoldCampaign(c.campaigns[campaignID], evt)
	return true
}

// Campaign returns the snapshot for campaignID.
func (c *Cache) Campaign(campaignID int64) (CampaignSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, ok := c.campaigns[campaignID]
	return snapshot, ok
}

// TeardownCampaign clears the current campaign snapshot and target.
//
// Called on navigation-away so a later view never reads another campaign's
// leftovers.
func (c *Cache) TeardownCampaign() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.campaignTarget != 0 {
		delete(c.campaigns, c.campaignTarget)
	}
	c.campaignTarget = 0
}

// SetSessionTarget marks sessionID as the entity currently of interest.
func (c *Cache) SetSessionTarget(sessionID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionTarget = sessionID
	if _, ok := c.sessions[sessionID]; !ok {
		c.sessions[sessionID] = SessionSnapshot{}
	}
}

// SessionTarget returns the session id currently of interest, zero when none.
func (c *Cache) SessionTarget() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionTarget
}

// ApplySession folds an event into the targeted session snapshot.
//
// It reports false without mutating anything when sessionID is no longer the
// current target.
func (c *Cache) ApplySession(sessionID int64, evt SessionEvent) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sessionID == 0 || sessionID != c.sessionTarget {
		return false
	}
	c.sessions[sessionID] = FoldSession(c.sessions[sessionID], evt)
	return true
}

// Session returns the snapshot for sessionID.
func (c *Cache) Session(sessionID int64) (SessionSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot, ok := c.sessions[sessionID]
	return snapshot, ok
}

// TeardownSession clears the current session snapshot and target.
func (c *Cache) TeardownSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionTarget != 0 {
		delete(c.sessions, c.sessionTarget)
	}
	c.sessionTarget = 0
}
