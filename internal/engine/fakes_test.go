package engine

import (
	"context"
	"errors"

	"github.com/partykeep/partykeep/internal/api"
	"github.com/partykeep/partykeep/internal/auth"
	"github.com/partykeep/partykeep/internal/domain"
)

// fakeIdentity satisfies IdentityProvider with a fixed user.
type fakeIdentity struct {
	user domain.User
}

func (f fakeIdentity) Identity() (auth.Identity, bool) {
	if f.user.ID == 0 {
		return auth.Identity{}, false
	}
	return auth.Identity{User: f.user}, true
}

var errFakeNotImplemented = errors.New("fake method not implemented")

// fakeCampaignAPI implements api.CampaignAPI through optional function
// fields, so each test wires only the calls it exercises.
type fakeCampaignAPI struct {
	listCampaigns        func(ctx context.Context) ([]domain.Campaign, error)
	getCampaign          func(ctx context.Context, campaignID int64) (domain.Campaign, error)
	updateCampaign       func(ctx context.Context, in api.CampaignUpdateInput) (domain.Campaign, error)
	deleteCampaign       func(ctx context.Context, campaignID int64) error
	listMembers          func(ctx context.Context, campaignID int64) ([]domain.Member, error)
	addMember            func(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error)
	removeMember         func(ctx context.Context, campaignID, userID int64) error
	changeMemberRole     func(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error)
	regenerateInviteCode func(ctx context.Context, campaignID int64) (string, error)
	joinByInviteCode     func(ctx context.Context, code string) (api.JoinOutcome, error)
	submitJoinRequest    func(ctx context.Context, campaignID int64, message string) (domain.JoinRequest, error)
	listJoinRequests     func(ctx context.Context, campaignID int64) ([]domain.JoinRequest, error)
	approveJoinRequest   func(ctx context.Context, campaignID, requestID int64, role domain.Role) (api.ApprovalOutcome, error)
	rejectJoinRequest    func(ctx context.Context, campaignID, requestID int64) (domain.JoinRequest, error)
}

func (f *fakeCampaignAPI) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	if f.listCampaigns == nil {
		return nil, errFakeNotImplemented
	}
	return f.listCampaigns(ctx)
}

func (f *fakeCampaignAPI) GetCampaign(ctx context.Context, campaignID int64) (domain.Campaign, error) {
	if f.getCampaign == nil {
		return domain.Campaign{}, errFakeNotImplemented
	}
	return f.getCampaign(ctx, campaignID)
}

func (f *fakeCampaignAPI) UpdateCampaign(ctx context.Context, in api.CampaignUpdateInput) (domain.Campaign, error) {
	if f.updateCampaign == nil {
		return domain.Campaign{}, errFakeNotImplemented
	}
	return f.updateCampaign(ctx, in)
}

func (f *fakeCampaignAPI) DeleteCampaign(ctx context.Context, campaignID int64) error {
	if f.deleteCampaign == nil {
		return errFakeNotImplemented
	}
	return f.deleteCampaign(ctx, campaignID)
}

func (f *fakeCampaignAPI) ListMembers(ctx context.Context, campaignID int64) ([]domain.Member, error) {
	if f.listMembers == nil {
		return nil, errFakeNotImplemented
	}
	return f.listMembers(ctx, campaignID)
}

func (f *fakeCampaignAPI) AddMember(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error) {
	if f.addMember == nil {
		return domain.Member{}, errFakeNotImplemented
	}
	return f.addMember(ctx, campaignID, userID, role)
}

func (f *fakeCampaignAPI) RemoveMember(ctx context.Context, campaignID, userID int64) error {
	if f.removeMember == nil {
		return errFakeNotImplemented
	}
	return f.removeMember(ctx, campaignID, userID)
}

func (f *fakeCampaignAPI) ChangeMemberRole(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error) {
	if f.changeMemberRole == nil {
		return domain.Member{}, errFakeNotImplemented
	}
	return f.changeMemberRole(ctx, campaignID, userID, role)
}

func (f *fakeCampaignAPI) RegenerateInviteCode(ctx context.Context, campaignID int64) (string, error) {
	if f.regenerateInviteCode == nil {
		return "", errFakeNotImplemented
	}
	return f.regenerateInviteCode(ctx, campaignID)
}

func (f *fakeCampaignAPI) JoinByInviteCode(ctx context.Context, code string) (api.JoinOutcome, error) {
	if f.joinByInviteCode == nil {
		return api.JoinOutcome{}, errFakeNotImplemented
	}
	return f.joinByInviteCode(ctx, code)
}

func (f *fakeCampaignAPI) SubmitJoinRequest(ctx context.Context, campaignID int64, message string) (domain.JoinRequest, error) {
	if f.submitJoinRequest == nil {
		return domain.JoinRequest{}, errFakeNotImplemented
	}
	return f.submitJoinRequest(ctx, campaignID, message)
}

func (f *fakeCampaignAPI) ListJoinRequests(ctx context.Context, campaignID int64) ([]domain.JoinRequest, error) {
	if f.listJoinRequests == nil {
		return nil, errFakeNotImplemented
	}
	return f.listJoinRequests(ctx, campaignID)
}

func (f *fakeCampaignAPI) ApproveJoinRequest(ctx context.Context, campaignID, requestID int64, role domain.Role) (api.ApprovalOutcome, error) {
	if f.approveJoinRequest == nil {
		return api.ApprovalOutcome{}, errFakeNotImplemented
	}
	return f.approveJoinRequest(ctx, campaignID, requestID, role)
}

func (f *fakeCampaignAPI) RejectJoinRequest(ctx context.Context, campaignID, requestID int64) (domain.JoinRequest, error) {
	if f.rejectJoinRequest == nil {
		return domain.JoinRequest{}, errFakeNotImplemented
	}
	return f.rejectJoinRequest(ctx, campaignID, requestID)
}

// fakeSessionAPI implements api.SessionAPI through optional function fields.
type fakeSessionAPI struct {
	getSession              func(ctx context.Context, sessionID int64) (domain.Session, error)
	updateSession           func(ctx context.Context, in api.SessionUpdateInput) (domain.Session, error)
	changeSessionStatus     func(ctx context.Context, sessionID int64, status domain.SessionStatus) (domain.Session, error)
	deleteSession           func(ctx context.Context, sessionID int64) error
	listParticipants        func(ctx context.Context, sessionID int64) ([]domain.Participant, error)
	joinSession             func(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error)
	leaveSession            func(ctx context.Context, sessionID int64) error
	updateParticipantStatus func(ctx context.Context, sessionID, participantID int64, status domain.ParticipantStatus) (domain.Participant, error)
	removeParticipant       func(ctx context.Context, sessionID, participantID int64) error
}

func (f *fakeSessionAPI) GetSession(ctx context.Context, sessionID int64) (domain.Session, error) {
	if f.getSession == nil {
		return domain.Session{}, errFakeNotImplemented
	}
	return f.getSession(ctx, sessionID)
}

func (f *fakeSessionAPI) UpdateSession(ctx context.Context, in api.SessionUpdateInput) (domain.Session, error) {
	if f.updateSession == nil {
		return domain.Session{}, errFakeNotImplemented
	}
	return f.updateSession(ctx, in)
}

func (f *fakeSessionAPI) ChangeSessionStatus(ctx context.Context, sessionID int64, status domain.SessionStatus) (domain.Session, error) {
	if f.changeSessionStatus == nil {
		return domain.Session{}, errFakeNotImplemented
	}
	return f.changeSessionStatus(ctx, sessionID, status)
}

func (f *fakeSessionAPI) DeleteSession(ctx context.Context, sessionID int64) error {
	if f.deleteSession == nil {
		return errFakeNotImplemented
	}
	return f.deleteSession(ctx, sessionID)
}

func (f *fakeSessionAPI) ListParticipants(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
	if f.listParticipants == nil {
		return nil, errFakeNotImplemented
	}
	return f.listParticipants(ctx, sessionID)
}

func (f *fakeSessionAPI) JoinSession(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error) {
	if f.joinSession == nil {
		return domain.Participant{}, errFakeNotImplemented
	}
	return f.joinSession(ctx, sessionID, characterName)
}

func (f *fakeSessionAPI) LeaveSession(ctx context.Context, sessionID int64) error {
	if f.leaveSession == nil {
		return errFakeNotImplemented
	}
	return f.leaveSession(ctx, sessionID)
}

func (f *fakeSessionAPI) UpdateParticipantStatus(ctx context.Context, sessionID, participantID int64, status domain.ParticipantStatus) (domain.Participant, error) {
	if f.updateParticipantStatus == nil {
		return domain.Participant{}, errFakeNotImplemented
	}
	return f.updateParticipantStatus(ctx, sessionID, participantID, status)
}

func (f *fakeSessionAPI) RemoveParticipant(ctx context.Context, sessionID, participantID int64) error {
	if f.removeParticipant == nil {
		return errFakeNotImplemented
	}
	return f.removeParticipant(ctx, sessionID, participantID)
}

var (
	_ api.CampaignAPI = (*fakeCampaignAPI)(nil)
	_ api.SessionAPI  = (*fakeSessionAPI)(nil)
)
