package engine

import (
	"context"
	"time"

	"github.com/partykeep/partykeep/internal/access"
	"github.com/partykeep/partykeep/internal/api"
	"github.com/partykeep/partykeep/internal/domain"
	"github.com/partykeep/partykeep/internal/lifecycle"
	"github.com/partykeep/partykeep/internal/orchestrator"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
	"github.com/partykeep/partykeep/internal/state"
	"github.com/partykeep/partykeep/internal/state/store"
)

// SessionController drives one session's detail view: roster loading, role
// and access-mode resolution, joining and leaving, and status transitions.
type SessionController struct {
	remote    api.SessionAPI
	campaigns api.CampaignAPI
	cache     *state.Cache
	warm      store.Store
	runner    *orchestrator.Runner
	identity  IdentityProvider
	now       func() time.Time
}

// NewSessionController wires a session controller. The campaign API supplies
// parent-campaign context for role resolution; the warm store may be nil.
func NewSessionController(remote api.SessionAPI, campaigns api.CampaignAPI, cache *state.Cache, warm store.Store, runner *orchestrator.Runner, identity IdentityProvider) *SessionController {
	return &SessionController{
		remote:    remote,
		campaigns: campaigns,
		cache:     cache,
		warm:      warm,
		runner:    runner,
		identity:  identity,
		now:       time.Now,
	}
}

// Open makes sessionID the current target and loads its snapshot, roster,
// and parent campaign context.
func (c *SessionController) Open(ctx context.Context, sessionID int64) orchestrator.Result {
	c.cache.SetSessionTarget(sessionID)
	c.serveWarm(ctx, sessionID)

	if result := c.LoadSession(ctx); !result.Success {
		return result
	}
	return c.LoadParticipants(ctx)
}

// Close abandons the current session.
func (c *SessionController) Close() {
	c.cache.TeardownSession()
}

// Snapshot returns the current session snapshot, if one is cached.
func (c *SessionController) Snapshot() (state.SessionSnapshot, bool) {
	return c.cache.Session(c.cache.SessionTarget())
}

// Role resolves the signed-in user's effective session role.
func (c *SessionController) Role() domain.Role {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded {
		return domain.RoleUnspecified
	}
	return access.ResolveSessionRole(access.SessionRoleInput{
		Session:         snapshot.Session,
		Participants:    snapshot.Participants,
		Campaign:        snapshot.Campaign,
		CampaignMembers: snapshot.CampaignMembers,
		UserID:          userID(c.identity),
	})
}

// AccessMode resolves the current view mode for the session. Membership
// means holding a roster row; a campaign GM without one stays in preview.
// The mode stays LOADING until the roster has resolved, so a participant
// never flashes preview while the list is still in flight.
func (c *SessionController) AccessMode() access.Mode {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded || !snapshot.ParticipantsLoaded {
		return access.ModeLoading
	}
	return access.ResolveAccessMode(c.IsParticipant(), false)
}

// IsParticipant reports whether the signed-in user holds a roster row.
func (c *SessionController) IsParticipant() bool {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded {
		return false
	}
	return access.IsSessionParticipant(snapshot.Participants, userID(c.identity))
}

// CanManage reports whether the signed-in user may manage the session.
func (c *SessionController) CanManage() bool {
	return access.CanManage(c.Role())
}

// CanJoin reports join eligibility: a PLANNED session with a free seat and
// no existing roster row for the user.
func (c *SessionController) CanJoin() bool {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded || !snapshot.ParticipantsLoaded {
		return false
	}
	id := userID(c.identity)
	if id == 0 {
		return false
	}
	return lifecycle.CanJoinSession(snapshot.Session, snapshot.Participants, id)
}

// LoadSession fetches the current session record and, for campaign-bound
// sessions, the parent campaign context used by role resolution.
func (c *SessionController) LoadSession(ctx context.Context) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeyLoading, func(ctx context.Context) error {
		session, err := c.remote.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.SessionFetched{Session: session}) {
			return errStaleTarget
		}
		writeWarm(ctx, c.warm, store.Entry{
			CacheKey:   sessionSummaryKey(sessionID),
			Scope:      store.ScopeSessionSummary,
			SessionID:  sessionID,
			CampaignID: session.CampaignID,
		}, session, c.now(), detailTTL)

		if session.OneShot() {
			return nil
		}
		campaign, err := c.campaigns.GetCampaign(ctx, session.CampaignID)
		if err != nil {
			return err
		}
		members, err := c.campaigns.ListMembers(ctx, session.CampaignID)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.SessionCampaignFetched{Campaign: campaign, Members: members}) {
			return errStaleTarget
		}
		return nil
	})
}

// LoadParticipants fetches the current session's roster.
func (c *SessionController) LoadParticipants(ctx context.Context) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeyLoadingParticipants, func(ctx context.Context) error {
		participants, err := c.remote.ListParticipants(ctx, sessionID)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.ParticipantsListed{Participants: participants}) {
			return errStaleTarget
		}
		writeWarm(ctx, c.warm, store.Entry{
			CacheKey:  sessionParticipantsKey(sessionID),
			Scope:     store.ScopeSessionParticipants,
			SessionID: sessionID,
		}, participants, c.now(), listTTL)
		return nil
	})
}

// UpdateSession applies a partial edit to the current session. Manager only.
func (c *SessionController) UpdateSession(ctx context.Context, in api.SessionUpdateInput) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	in.SessionID = sessionID
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		session, err := c.remote.UpdateSession(ctx, in)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.SessionFetched{Session: session}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionSummary)
		return nil
	})
}

// DeleteSession removes the current session and tears down its snapshot.
// Manager only.
func (c *SessionController) DeleteSession(ctx context.Context) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		if err := c.remote.DeleteSession(ctx, sessionID); err != nil {
			return err
		}
		c.cache.TeardownSession()
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionSummary)
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionParticipants)
		return nil
	})
}

// Join adds the signed-in user to the roster. Capacity and the PLANNED
// requirement are checked locally before the call goes out.
func (c *SessionController) Join(ctx context.Context, characterName string) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySubmitting, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		if err := lifecycle.ValidateJoinSession(snapshot.Session, snapshot.Participants, userID(c.identity)); err != nil {
			return err
		}
		participant, err := c.remote.JoinSession(ctx, sessionID, domain.NormalizeCharacterName(characterName))
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.ParticipantUpserted{Participant: participant}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionParticipants)
		return nil
	})
}

// Leave removes the signed-in user's own roster row.
func (c *SessionController) Leave(ctx context.Context) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySubmitting, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		id := userID(c.identity)
		if err := lifecycle.ValidateLeaveSession(snapshot.Session, snapshot.Participants, id); err != nil {
			return err
		}
		var participantID int64
		for _, participant := range snapshot.Participants {
			if participant.UserID == id {
				participantID = participant.ID
				break
			}
		}
		if err := c.remote.LeaveSession(ctx, sessionID); err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.ParticipantRemoved{ParticipantID: participantID}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionParticipants)
		return nil
	})
}

// RemoveParticipant removes a roster row, the caller's own under leave
// rules, anyone else's with manager rights.
func (c *SessionController) RemoveParticipant(ctx context.Context, participantID int64) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		target, err := findParticipant(snapshot.Participants, participantID)
		if err != nil {
			return err
		}
		if err := lifecycle.ValidateRemoveParticipant(snapshot.Session, snapshot.Participants, c.Role(), userID(c.identity), target); err != nil {
			return err
		}
		if err := c.remote.RemoveParticipant(ctx, sessionID, participantID); err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.ParticipantRemoved{ParticipantID: participantID}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionParticipants)
		return nil
	})
}

// SetParticipantStatus updates a roster row's attendance tag. Manager only.
func (c *SessionController) SetParticipantStatus(ctx context.Context, participantID int64, status domain.ParticipantStatus) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		if _, err := findParticipant(snapshot.Participants, participantID); err != nil {
			return err
		}
		if err := lifecycle.ValidateParticipantStatusChange(c.Role(), status); err != nil {
			return err
		}
		participant, err := c.remote.UpdateParticipantStatus(ctx, sessionID, participantID, status)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.ParticipantUpserted{Participant: participant}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionParticipants)
		return nil
	})
}

// Start moves the session from PLANNED to ACTIVE. Manager only.
func (c *SessionController) Start(ctx context.Context) orchestrator.Result {
	return c.changeStatus(ctx, domain.SessionStatusActive)
}

// Finish moves the session from ACTIVE to FINISHED. Manager only.
func (c *SessionController) Finish(ctx context.Context) orchestrator.Result {
	return c.changeStatus(ctx, domain.SessionStatusFinished)
}

// Cancel moves the session from PLANNED to CANCELLED. Manager only.
func (c *SessionController) Cancel(ctx context.Context) orchestrator.Result {
	return c.changeStatus(ctx, domain.SessionStatusCancelled)
}

func (c *SessionController) changeStatus(ctx context.Context, next domain.SessionStatus) orchestrator.Result {
	sessionID := c.cache.SessionTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		if err := lifecycle.ValidateSessionStatusTransition(snapshot.Session.Status, next, c.Role()); err != nil {
			return err
		}
		updated, err := c.remote.ChangeSessionStatus(ctx, sessionID, next)
		if err != nil {
			return err
		}
		if !c.cache.ApplySession(sessionID, state.SessionStatusChanged{Status: updated.Status}) {
			return errStaleTarget
		}
		staleSessionScope(ctx, c.warm, sessionID, store.ScopeSessionSummary)
		return nil
	})
}

func findParticipant(participants []domain.Participant, participantID int64) (domain.Participant, error) {
	for _, participant := range participants {
		if participant.ID == participantID {
			return participant, nil
		}
	}
	return domain.Participant{}, apperrors.New(apperrors.CodeParticipantNotFound, "participant not found")
}

// serveWarm folds fresh warm payloads into the snapshot so the view renders
// before the remote fetch resolves.
func (c *SessionController) serveWarm(ctx context.Context, sessionID int64) {
	now := c.now()
	var session domain.Session
	if readWarm(ctx, c.warm, sessionSummaryKey(sessionID), now, &session) {
		c.cache.ApplySession(sessionID, state.SessionFetched{Session: session})
	}
	var participants []domain.Participant
	if readWarm(ctx, c.warm, sessionParticipantsKey(sessionID), now, &participants) {
		c.cache.ApplySession(sessionID, state.ParticipantsListed{Participants: participants})
	}
}
