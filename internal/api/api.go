// Package api declares the remote operations the engine consumes and
// implements them over the platform's JSON HTTP API.
package api

import (
	"context"

	"github.com/partykeep/partykeep/internal/domain"
)

// CampaignUpdateInput carries the mutable campaign fields. Nil pointers
// leave the corresponding field unchanged on the server.
type CampaignUpdateInput struct {
	CampaignID int64
	Title      *string
	Visibility *domain.Visibility
}

// SessionUpdateInput carries the mutable session fields. Nil pointers leave
// the corresponding field unchanged on the server.
type SessionUpdateInput struct {
	SessionID   int64
	Title       *string
	StartsAt    *int64
	DurationMin *int
	MaxPlayers  *int
}

// JoinOutcome is the server's answer to an invite-code join: the campaign
// joined and the member row it created.
type JoinOutcome struct {
	Campaign domain.Campaign
	Member   domain.Member
}

// ApprovalOutcome is the server's answer to an approved join request: the
// resolved request and the member row it created.
type ApprovalOutcome struct {
	Request domain.JoinRequest
	Member  domain.Member
}

// CampaignAPI is the campaign-side remote surface.
type CampaignAPI interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	GetCampaign(ctx context.Context, campaignID int64) (domain.Campaign, error)
	UpdateCampaign(ctx context.Context, in CampaignUpdateInput) (domain.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID int64) error
	ListMembers(ctx context.Context, campaignID int64) ([]domain.Member, error)
	AddMember(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error)
	RemoveMember(ctx context.Context, campaignID, userID int64) error
	ChangeMemberRole(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error)
	RegenerateInviteCode(ctx context.Context, campaignID int64) (string, error)
	JoinByInviteCode(ctx context.Context, code string) (JoinOutcome, error)
	SubmitJoinRequest(ctx context.Context, campaignID int64, message string) (domain.JoinRequest, error)
	ListJoinRequests(ctx context.Context, campaignID int64) ([]domain.JoinRequest, error)
	ApproveJoinRequest(ctx context.Context, campaignID, requestID int64, role domain.Role) (ApprovalOutcome, error)
	RejectJoinRequest(ctx context.Context, campaignID, requestID int64) (domain.JoinRequest, error)
}

// SessionAPI is the session-side remote surface.
type SessionAPI interface {
	GetSession(ctx context.Context, sessionID int64) (domain.Session, error)
	UpdateSession(ctx context.Context, in SessionUpdateInput) (domain.Session, error)
	ChangeSessionStatus(ctx context.Context, sessionID int64, status domain.SessionStatus) (domain.Session, error)
	DeleteSession(ctx context.Context, sessionID int64) error
	ListParticipants(ctx context.Context, sessionID int64) ([]domain.Participant, error)
	JoinSession(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error)
	LeaveSession(ctx context.Context, sessionID int64) error
	UpdateParticipantStatus(ctx context.Context, sessionID, participantID int64, status domain.ParticipantStatus) (domain.Participant, error)
	RemoveParticipant(ctx context.Context, sessionID, participantID int64) error
}
