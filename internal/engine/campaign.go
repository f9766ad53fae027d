package engine

import (
	"context"
	"fmt"
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

// CampaignController drives one campaign's detail view: snapshot loading,
// role and access-mode resolution, and every membership lifecycle action.
type CampaignController struct {
	remote   api.CampaignAPI
	cache    *state.Cache
	warm     store.Store
	runner   *orchestrator.Runner
	identity IdentityProvider
	now      func() time.Time
}

// NewCampaignController wires a campaign controller. The warm store may be
// nil, which disables payload reuse across restarts.
func NewCampaignController(remote api.CampaignAPI, cache *state.Cache, warm store.Store, runner *orchestrator.Runner, identity IdentityProvider) *CampaignController {
	return &CampaignController{
		remote:   remote,
		cache:    cache,
		warm:     warm,
		runner:   runner,
		identity: identity,
		now:      time.Now,
	}
}

// Open makes campaignID the current target and loads its snapshot. Warm
// payloads render first; the remote fetch replaces them when it lands.
func (c *CampaignController) Open(ctx context.Context, campaignID int64) orchestrator.Result {
	c.cache.SetCampaignTarget(campaignID)
	c.serveWarm(ctx, campaignID)

	if result := c.LoadCampaign(ctx); !result.Success {
		return result
	}
	return c.LoadMembers(ctx)
}

// Close abandons the current campaign. A fetch that resolves afterwards is
// discarded as stale.
func (c *CampaignController) Close() {
	c.cache.TeardownCampaign()
}

// Snapshot returns the current campaign snapshot, if one is cached.
func (c *CampaignController) Snapshot() (state.CampaignSnapshot, bool) {
	return c.cache.Campaign(c.cache.CampaignTarget())
}

// Role resolves the signed-in user's effective campaign role.
func (c *CampaignController) Role() domain.Role {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded {
		return domain.RoleUnspecified
	}
	return access.ResolveCampaignRole(snapshot.Campaign, snapshot.Members, userID(c.identity))
}

// AccessMode resolves the current view mode for the campaign. Membership is
// unknown until the member list lands, so the mode stays LOADING until both
// the record and the roster have resolved; a member never flashes preview.
func (c *CampaignController) AccessMode() access.Mode {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded || !snapshot.MembersLoaded {
		return access.ModeLoading
	}
	return access.ResolveAccessMode(c.IsMember(), false)
}

// IsMember reports whether the signed-in user belongs to the campaign.
func (c *CampaignController) IsMember() bool {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded {
		return false
	}
	return access.IsCampaignMember(snapshot.Campaign, snapshot.Members, userID(c.identity))
}

// CanManage reports whether the signed-in user may manage the campaign.
func (c *CampaignController) CanManage() bool {
	return access.CanManage(c.Role())
}

// InviteCode returns the campaign's active invite code. Members only; the
// code is how existing members bring new players in.
func (c *CampaignController) InviteCode() (string, error) {
	if err := lifecycle.RequireMember(c.IsMember()); err != nil {
		return "", err
	}
	snapshot, _ := c.Snapshot()
	return snapshot.Campaign.InviteCode, nil
}

// CanSubmitJoinRequest reports whether the gated request action applies: a
// loaded campaign, a non-member viewer, and no pending request of theirs.
func (c *CampaignController) CanSubmitJoinRequest() bool {
	snapshot, ok := c.Snapshot()
	if !ok || !snapshot.Loaded || c.IsMember() {
		return false
	}
	id := userID(c.identity)
	if id == 0 {
		return false
	}
	for _, request := range snapshot.JoinRequests {
		if request.UserID == id && request.Status == domain.JoinRequestStatusPending {
			return false
		}
	}
	return true
}

// ListCampaigns returns the signed-in user's campaigns, serving a fresh warm
// list without a remote call when one exists.
func (c *CampaignController) ListCampaigns(ctx context.Context) ([]domain.Campaign, orchestrator.Result) {
	id := userID(c.identity)
	var warmList []domain.Campaign
	if readWarm(ctx, c.warm, campaignListKey(id), c.now(), &warmList) {
		return warmList, orchestrator.Result{Success: true}
	}

	var campaigns []domain.Campaign
	result := c.runner.Do(ctx, KeyLoadingCampaigns, func(ctx context.Context) error {
		listed, err := c.remote.ListCampaigns(ctx)
		if err != nil {
			return err
		}
		campaigns = listed
		writeWarm(ctx, c.warm, store.Entry{
			CacheKey: campaignListKey(id),
			Scope:    store.ScopeCampaignSummary,
			UserID:   id,
		}, listed, c.now(), listTTL)
		return nil
	})
	return campaigns, result
}

// LoadCampaign fetches the current campaign record.
func (c *CampaignController) LoadCampaign(ctx context.Context) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeyLoading, func(ctx context.Context) error {
		campaign, err := c.remote.GetCampaign(ctx, campaignID)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.CampaignFetched{Campaign: campaign}) {
			return errStaleTarget
		}
		writeWarm(ctx, c.warm, store.Entry{
			CacheKey:   campaignSummaryKey(campaignID),
			Scope:      store.ScopeCampaignSummary,
			CampaignID: campaignID,
		}, campaign, c.now(), detailTTL)
		return nil
	})
}

// LoadMembers fetches the current campaign's member list.
func (c *CampaignController) LoadMembers(ctx context.Context) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeyLoadingMembers, func(ctx context.Context) error {
		members, err := c.remote.ListMembers(ctx, campaignID)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.MembersListed{Members: members}) {
			return errStaleTarget
		}
		writeWarm(ctx, c.warm, store.Entry{
			CacheKey:   campaignMembersKey(campaignID),
			Scope:      store.ScopeCampaignMembers,
			CampaignID: campaignID,
		}, members, c.now(), listTTL)
		return nil
	})
}

// LoadJoinRequests fetches the pending request queue. Manager only.
func (c *CampaignController) LoadJoinRequests(ctx context.Context) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeyLoadingJoinRequests, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		requests, err := c.remote.ListJoinRequests(ctx, campaignID)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.JoinRequestsListed{Requests: requests}) {
			return errStaleTarget
		}
		return nil
	})
}

// UpdateCampaign applies a partial edit to the current campaign.
func (c *CampaignController) UpdateCampaign(ctx context.Context, in api.CampaignUpdateInput) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	in.CampaignID = campaignID
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		if in.Title != nil && *in.Title == "" {
			return apperrors.New(apperrors.CodeCampaignTitleEmpty, "campaign title is required")
		}
		campaign, err := c.remote.UpdateCampaign(ctx, in)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.CampaignFetched{Campaign: campaign}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignSummary)
		return nil
	})
}

// DeleteCampaign removes the current campaign and tears down its snapshot.
func (c *CampaignController) DeleteCampaign(ctx context.Context) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		if err := c.remote.DeleteCampaign(ctx, campaignID); err != nil {
			return err
		}
		c.cache.TeardownCampaign()
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignSummary)
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignMembers)
		return nil
	})
}

// AddMember grants a user membership with the given role. Manager only.
func (c *CampaignController) AddMember(ctx context.Context, memberUserID int64, role domain.Role) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		if role != domain.RoleGM && role != domain.RolePlayer {
			return apperrors.New(apperrors.CodeMemberInvalidRole, "member role must be GM or PLAYER")
		}
		member, err := c.remote.AddMember(ctx, campaignID, memberUserID, role)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.MemberUpserted{Member: member}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignMembers)
		return nil
	})
}

// RemoveMember revokes a user's membership. Manager only.
func (c *CampaignController) RemoveMember(ctx context.Context, memberUserID int64) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		snapshot, _ := c.Snapshot()
		var memberID int64
		for _, member := range snapshot.Members {
			if member.UserID == memberUserID {
				memberID = member.ID
				break
			}
		}
		if memberID == 0 {
			return apperrors.New(apperrors.CodeMemberNotFound, "member not found")
		}
		if err := c.remote.RemoveMember(ctx, campaignID, memberUserID); err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.MemberRemoved{MemberID: memberID}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignMembers)
		return nil
	})
}

// ChangeMemberRole updates a member's role. Manager only.
func (c *CampaignController) ChangeMemberRole(ctx context.Context, memberUserID int64, role domain.Role) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.RequireManager(c.Role()); err != nil {
			return err
		}
		if role != domain.RoleGM && role != domain.RolePlayer {
			return apperrors.New(apperrors.CodeMemberInvalidRole, "member role must be GM or PLAYER")
		}
		member, err := c.remote.ChangeMemberRole(ctx, campaignID, memberUserID, role)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.MemberUpserted{Member: member}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignMembers)
		return nil
	})
}

// RotateInviteCode replaces the campaign's invite code; the old code stops
// working immediately. Manager only.
func (c *CampaignController) RotateInviteCode(ctx context.Context) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		if err := lifecycle.ValidateRotateInviteCode(c.Role()); err != nil {
			return err
		}
		code, err := c.remote.RegenerateInviteCode(ctx, campaignID)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.InviteCodeRotated{InviteCode: code}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignSummary)
		return nil
	})
}

// JoinByInviteCode redeems an invite code. When the joined campaign is the
// one on screen, the new member row folds straight into its snapshot.
func (c *CampaignController) JoinByInviteCode(ctx context.Context, code string) orchestrator.Result {
	return c.runner.Do(ctx, KeySubmitting, func(ctx context.Context) error {
		normalized, err := lifecycle.NormalizeInviteCode(code)
		if err != nil {
			return err
		}
		outcome, err := c.remote.JoinByInviteCode(ctx, normalized)
		if err != nil {
			return err
		}
		if c.cache.CampaignTarget() == outcome.Campaign.ID {
			c.cache.ApplyCampaign(outcome.Campaign.ID, state.CampaignFetched{Campaign: outcome.Campaign})
			c.cache.ApplyCampaign(outcome.Campaign.ID, state.MemberUpserted{Member: outcome.Member})
		}
		staleCampaignScope(ctx, c.warm, outcome.Campaign.ID, store.ScopeCampaignMembers)
		return nil
	})
}

// SubmitJoinRequest asks to join the current campaign. The in-flight guard
// absorbs a rapid double submit before it reaches the server.
func (c *CampaignController) SubmitJoinRequest(ctx context.Context, message string) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	key := fmt.Sprintf("submitJoinRequest:%d", campaignID)
	return c.runner.DoExclusive(ctx, key, func(ctx context.Context) error {
		snapshot, _ := c.Snapshot()
		if err := lifecycle.ValidateSubmitJoinRequest(snapshot.Campaign, snapshot.Members, snapshot.JoinRequests, userID(c.identity)); err != nil {
			return err
		}
		request, err := c.remote.SubmitJoinRequest(ctx, campaignID, domain.NormalizeJoinRequestMessage(message))
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.JoinRequestUpserted{Request: request}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignJoinRequests)
		return nil
	})
}

// ApproveJoinRequest approves a pending request, creating a member row with
// the granted role. Manager only.
func (c *CampaignController) ApproveJoinRequest(ctx context.Context, requestID int64, role domain.Role) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		request, err := c.findJoinRequest(requestID)
		if err != nil {
			return err
		}
		if err := lifecycle.ValidateResolveJoinRequest(request, c.Role(), domain.JoinRequestStatusApproved); err != nil {
			return err
		}
		outcome, err := c.remote.ApproveJoinRequest(ctx, campaignID, requestID, lifecycle.ApprovalRole(role))
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.JoinRequestUpserted{Request: outcome.Request}) {
			return errStaleTarget
		}
		c.cache.ApplyCampaign(campaignID, state.MemberUpserted{Member: outcome.Member})
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignMembers)
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignJoinRequests)
		return nil
	})
}

// RejectJoinRequest rejects a pending request. Manager only.
func (c *CampaignController) RejectJoinRequest(ctx context.Context, requestID int64) orchestrator.Result {
	campaignID := c.cache.CampaignTarget()
	return c.runner.Do(ctx, KeySaving, func(ctx context.Context) error {
		request, err := c.findJoinRequest(requestID)
		if err != nil {
			return err
		}
		if err := lifecycle.ValidateResolveJoinRequest(request, c.Role(), domain.JoinRequestStatusRejected); err != nil {
			return err
		}
		rejected, err := c.remote.RejectJoinRequest(ctx, campaignID, requestID)
		if err != nil {
			return err
		}
		if !c.cache.ApplyCampaign(campaignID, state.JoinRequestUpserted{Request: rejected}) {
			return errStaleTarget
		}
		staleCampaignScope(ctx, c.warm, campaignID, store.ScopeCampaignJoinRequests)
		return nil
	})
}

func (c *CampaignController) findJoinRequest(requestID int64) (domain.JoinRequest, error) {
	snapshot, ok := c.Snapshot()
	if !ok {
		return domain.JoinRequest{}, apperrors.New(apperrors.CodeJoinRequestInvalidTarget, "join request not found")
	}
	for _, request := range snapshot.JoinRequests {
		if request.ID == requestID {
			return request, nil
		}
	}
	return domain.JoinRequest{}, apperrors.New(apperrors.CodeJoinRequestInvalidTarget, "join request not found")
}

// serveWarm folds fresh warm payloads into the snapshot so the view renders
// before the remote fetch resolves.
func (c *CampaignController) serveWarm(ctx context.Context, campaignID int64) {
	now := c.now()
	var campaign domain.Campaign
	if readWarm(ctx, c.warm, campaignSummaryKey(campaignID), now, &campaign) {
		c.cache.ApplyCampaign(campaignID, state.CampaignFetched{Campaign: campaign})
	}
	var members []domain.Member
	if readWarm(ctx, c.warm, campaignMembersKey(campaignID), now, &members) {
		c.cache.ApplyCampaign(campaignID, state.MembersListed{Members: members})
	}
}
