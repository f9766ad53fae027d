package state

import "github.com/partykeep/partykeep/internal/domain"

// CampaignEvent is a successful action result folded into a campaign snapshot.
//
// The set is closed: every cache mutation path appears here and nowhere else.
type CampaignEvent interface {
	campaignEvent()
}

// CampaignFetched replaces the campaign record after a fetch or update.
type CampaignFetched struct {
	Campaign domain.Campaign
}

// MembersListed replaces the member list after a list fetch.
type MembersListed struct {
	Members []domain.Member
}

// MemberUpserted inserts or replaces one member row.
type MemberUpserted struct {
	Member domain.Member
}

// MemberRemoved drops one member row.
type MemberRemoved struct {
	MemberID int64
}

// InviteCodeRotated replaces the campaign's single active invite code.
type InviteCodeRotated struct {
	InviteCode string
}

// JoinRequestsListed replaces the join request list after a list fetch.
type JoinRequestsListed struct {
	Requests []domain.JoinRequest
}

// JoinRequestUpserted inserts or replaces one join request row.
type JoinRequestUpserted struct {
	Request domain.JoinRequest
}

func (CampaignFetched) campaignEvent()     {}
func (MembersListed) campaignEvent()       {}
func (MemberUpserted) campaignEvent()      {}
func (MemberRemoved) campaignEvent()       {}
func (InviteCodeRotated) campaignEvent()   {}
func (JoinRequestsListed) campaignEvent()  {}
func (JoinRequestUpserted) campaignEvent() {}

// SessionEvent is a successful action result folded into a session snapshot.
type SessionEvent interface {
	sessionEvent()
}

// SessionFetched replaces the session record after a fetch or update.
type SessionFetched struct {
	Session domain.Session
}

// SessionCampaignFetched attaches parent campaign context for role resolution.
type SessionCampaignFetched struct {
	Campaign domain.Campaign
	Members  []domain.Member
}

// ParticipantsListed replaces the roster after a list fetch.
type ParticipantsListed struct {
	Participants []domain.Participant
}

// ParticipantUpserted inserts or replaces one roster row.
type ParticipantUpserted struct {
	Participant domain.Participant
}

// ParticipantRemoved drops one roster row.
type ParticipantRemoved struct {
	ParticipantID int64
}

// SessionStatusChanged advances the session's play status.
type SessionStatusChanged struct {
	Status domain.SessionStatus
}

func (SessionFetched) sessionEvent()         {}
func (SessionCampaignFetched) sessionEvent() {}
func (ParticipantsListed) sessionEvent()     {}
func (ParticipantUpserted) sessionEvent()    {}
func (ParticipantRemoved) sessionEvent()     {}
func (SessionStatusChanged) sessionEvent()   {}
