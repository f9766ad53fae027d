// Package state holds the entity snapshot cache and its reducers.
//
// Snapshots are the client's disposable copy of server entities; every
// mutation path funnels through a fold so the update surface stays
// enumerable and testable in isolation.
package state

import "github.com/partykeep/partykeep/internal/domain"

// CampaignSnapshot is the cached view of one campaign and its relations.
type CampaignSnapshot struct {
	Campaign     domain.Campaign
	Members      []domain.Member
	JoinRequests []domain.JoinRequest

	// Loaded flips once the campaign fetch has resolved; access mode stays
	// LOADING until then.
	Loaded bool
	// MembersLoaded flips once the member list has resolved.
	MembersLoaded bool
	// JoinRequestsLoaded flips once the join request list has resolved.
	JoinRequestsLoaded bool
}

// SessionSnapshot is the cached view of one session and its roster.
type SessionSnapshot struct {
	Session      domain.Session
	Participants []domain.Participant

	Campaign        domain.Campaign
	CampaignMembers []domain.Member

	Loaded             bool
	ParticipantsLoaded bool
	// CampaignLoaded flips once the parent campaign context has resolved;
	// it stays false for one-shot sessions with no parent.
	CampaignLoaded bool
}
