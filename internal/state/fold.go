package state

import "github.com/partykeep/partykeep/internal/domain"

// FoldCampaign applies an event to a campaign snapshot.
//
// Folds are pure and last-write-wins: replaying the same event is a no-op
// beyond replacing rows with identical data, which keeps double-delivered
// action results harmless.
func FoldCampaign(snapshot CampaignSnapshot, evt CampaignEvent) CampaignSnapshot {
	switch e := evt.(type) {
	case CampaignFetched:
		snapshot.Campaign = e.Campaign
		snapshot.Loaded = true
	case MembersListed:
		snapshot.Members = copyMembers(e.Members)
		snapshot.MembersLoaded = true
	case MemberUpserted:
		snapshot.Members = upsertMember(snapshot.Members, e.Member)
	case MemberRemoved:
		snapshot.Members = removeMember(snapshot.Members, e.MemberID)
	case InviteCodeRotated:
		snapshot.Campaign.InviteCode = e.InviteCode
	case JoinRequestsListed:
		snapshot.JoinRequests = copyJoinRequests(e.Requests)
		snapshot.JoinRequestsLoaded = true
	case JoinRequestUpserted:
		snapshot.JoinRequests = upsertJoinRequest(snapshot.JoinRequests, e.Request)
	}
	return snapshot
}

// FoldSession applies an event to a session snapshot.
func FoldSession(snapshot SessionSnapshot, evt SessionEvent) SessionSnapshot {
	switch e := evt.(type) {
	case SessionFetched:
		snapshot.Session = e.Session
		snapshot.Loaded = true
	case SessionCampaignFetched:
		snapshot.Campaign = e.Campaign
		snapshot.CampaignMembers = copyMembers(e.Members)
		snapshot.CampaignLoaded = true
	case ParticipantsListed:
		snapshot.Participants = copyParticipants(e.Participants)
		snapshot.ParticipantsLoaded = true
	case ParticipantUpserted:
		snapshot.Participants = upsertParticipant(snapshot.Participants, e.Participant)
	case ParticipantRemoved:
		snapshot.Participants = removeParticipant(snapshot.Participants, e.ParticipantID)
	case SessionStatusChanged:
		snapshot.Session.Status = e.Status
	}
	return snapshot
}

func copyMembers(members []domain.Member) []domain.Member {
	if len(members) == 0 {
		return nil
	}
	out := make([]domain.Member, len(members))
	copy(out, members)
	return out
}

func copyParticipants(participants []domain.Participant) []domain.Participant {
	if len(participants) == 0 {
		return nil
	}
	out := make([]domain.Participant, len(participants))
	copy(out, participants)
	return out
}

func copyJoinRequests(requests []domain.JoinRequest) []domain.JoinRequest {
	if len(requests) == 0 {
		return nil
	}
	out := make([]domain.JoinRequest, len(requests))
	copy(out, requests)
	return out
}

func upsertMember(members []domain.Member, member domain.Member) []domain.Member {
	out := copyMembers(members)
	for i := range out {
		if out[i].ID == member.ID {
			out[i] = member
			return out
		}
	}
	return append(out, member)
}

func removeMember(members []domain.Member, memberID int64) []domain.Member {
	out := make([]domain.Member, 0, len(members))
	for _, member := range members {
		if member.ID != memberID {
			out = append(out, member)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func upsertParticipant(participants []domain.Participant, participant domain.Participant) []domain.Participant {
	out := copyParticipants(participants)
	for i := range out {
		if out[i].ID == participant.ID {
			out[i] = participant
			return out
		}
	}
	return append(out, participant)
}

func removeParticipant(participants []domain.Participant, participantID int64) []domain.Participant {
	out := make([]domain.Participant, 0, len(participants))
	for _, participant := range participants {
		if participant.ID != participantID {
			out = append(out, participant)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func upsertJoinRequest(requests []domain.JoinRequest, request domain.JoinRequest) []domain.JoinRequest {
	out := copyJoinRequests(requests)
	for i := range out {
		if out[i].ID == request.ID {
			out[i] = request
			return out
		}
	}
	return append(out, request)
}
