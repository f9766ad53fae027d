// Package access derives effective roles and access modes from snapshots.
//
// Resolution is pure: the same snapshot always yields the same answer, and
// nothing here touches the network or the cache.
package access

import "github.com/partykeep/partykeep/internal/domain"

// campaignRoleRule is one predicate→role step of campaign resolution.
type campaignRoleRule struct {
	name    string
	resolve func(campaign domain.Campaign, members []domain.Member, userID int64) (domain.Role, bool)
}

// campaignRoleRules is the campaign resolution order; first match wins.
//
//	rule            | yields
//	----------------+--------------------------
//	campaign-owner  | OWNER (ignores Member rows)
//	member-row      | the row's role
var campaignRoleRules = []campaignRoleRule{
	{
		name: "campaign-owner",
		resolve: func(campaign domain.Campaign, _ []domain.Member, userID int64) (domain.Role, bool) {
			if campaign.OwnerID != 0 && campaign.OwnerID == userID {
				return domain.RoleOwner, true
			}
			return domain.RoleUnspecified, false
		},
	},
	{
		name: "member-row",
		resolve: func(_ domain.Campaign, members []domain.Member, userID int64) (domain.Role, bool) {
			for _, member := range members {
				if member.UserID == userID {
					return member.Role, true
				}
			}
			return domain.RoleUnspecified, false
		},
	},
}

// ResolveCampaignRole returns the user's effective role against a campaign,
// or RoleUnspecified for a non-member.
func ResolveCampaignRole(campaign domain.Campaign, members []domain.Member, userID int64) domain.Role {
	if userID == 0 {
		return domain.RoleUnspecified
	}
	for _, rule := range campaignRoleRules {
		if role, ok := rule.resolve(campaign, members, userID); ok {
			return role
		}
	}
	return domain.RoleUnspecified
}

// sessionRoleRule is one predicate→role step of session resolution.
type sessionRoleRule struct {
	name    string
	resolve func(in SessionRoleInput) (domain.Role, bool)
}

// SessionRoleInput bundles the relations session role resolution reads.
//
// Campaign and CampaignMembers are zero-valued for one-shot sessions.
type SessionRoleInput struct {
	Session         domain.Session
	Participants    []domain.Participant
	Campaign        domain.Campaign
	CampaignMembers []domain.Member
	UserID          int64
}

// sessionRoleRules is the session resolution order; first match wins.
//
//	rule              | yields
//	------------------+-----------------------------------------
//	campaign-owner    | OWNER
//	campaign-gm       | GM (campaign Member row with role GM)
//	participant-row   | the row's role, PLAYER when unspecified
//	one-shot-creator  | GM (campaign-less session, creator match)
var sessionRoleRules = []sessionRoleRule{
	{
		name: "campaign-owner",
		resolve: func(in SessionRoleInput) (domain.Role, bool) {
			if in.Session.OneShot() {
				return domain.RoleUnspecified, false
			}
			if in.Campaign.OwnerID != 0 && in.Campaign.OwnerID == in.UserID {
				return domain.RoleOwner, true
			}
			return domain.RoleUnspecified, false
		},
	},
	{
		name: "campaign-gm",
		resolve: func(in SessionRoleInput) (domain.Role, bool) {
			if in.Session.OneShot() {
				return domain.RoleUnspecified, false
			}
			for _, member := range in.CampaignMembers {
				if member.UserID == in.UserID && member.Role == domain.RoleGM {
					return domain.RoleGM, true
				}
			}
			return domain.RoleUnspecified, false
		},
	},
	{
		name: "participant-row",
		resolve: func(in SessionRoleInput) (domain.Role, bool) {
			for _, participant := range in.Participants {
				if participant.UserID == in.UserID {
					if participant.Role == domain.RoleUnspecified {
						return domain.RolePlayer, true
					}
					return participant.Role, true
				}
			}
			return domain.RoleUnspecified, false
		},
	},
	{
		name: "one-shot-creator",
		resolve: func(in SessionRoleInput) (domain.Role, bool) {
			if in.Session.OneShot() && in.Session.CreatorID != 0 && in.Session.CreatorID == in.UserID {
				return domain.RoleGM, true
			}
			return domain.RoleUnspecified, false
		},
	},
}

// ResolveSessionRole returns the user's effective role against a session,
// or RoleUnspecified for an outsider.
func ResolveSessionRole(in SessionRoleInput) domain.Role {
	if in.UserID == 0 {
		return domain.RoleUnspecified
	}
	for _, rule := range sessionRoleRules {
		if role, ok := rule.resolve(in); ok {
			return role
		}
	}
	return domain.RoleUnspecified
}

// CanManage reports whether a resolved role grants management rights.
func CanManage(role domain.Role) bool {
	return role.Manager()
}
