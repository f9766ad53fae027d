package engine

import (
	"context"
	"testing"

	"github.com/partykeep/partykeep/internal/access"
	"github.com/partykeep/partykeep/internal/api"
	"github.com/partykeep/partykeep/internal/domain"
	"github.com/partykeep/partykeep/internal/orchestrator"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
	"github.com/partykeep/partykeep/internal/state"
	"github.com/partykeep/partykeep/internal/state/store/memory"
)

func newSessionController(remote api.SessionAPI, campaigns api.CampaignAPI, user domain.User) *SessionController {
	return NewSessionController(remote, campaigns, state.NewCache(), memory.New(), orchestrator.NewRunner(), fakeIdentity{user: user})
}

func plannedSession(sessionID int64, maxPlayers int) domain.Session {
	return domain.Session{ID: sessionID, CampaignID: 42, CreatorID: 7, Title: "Session Zero", Status: domain.SessionStatusPlanned, MaxPlayers: maxPlayers}
}

func campaignContext() *fakeCampaignAPI {
	return &fakeCampaignAPI{
		getCampaign: func(ctx context.Context, campaignID int64) (domain.Campaign, error) {
			return domain.Campaign{ID: campaignID, OwnerID: 7}, nil
		},
		listMembers: func(ctx context.Context, campaignID int64) ([]domain.Member, error) {
			return []domain.Member{{ID: 1, CampaignID: campaignID, UserID: 8, Role: domain.RoleGM}}, nil
		},
	}
}

func TestSessionAccessModeStaysLoadingUntilRosterResolves(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 0), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return []domain.Participant{{ID: 1, SessionID: sessionID, UserID: 3, Role: domain.RolePlayer}}, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 3})

	controller.cache.SetSessionTarget(5)
	if result := controller.LoadSession(context.Background()); !result.Success {
		t.Fatalf("LoadSession() result = %+v, want success", result)
	}

	if mode := controller.AccessMode(); mode != access.ModeLoading {
		t.Fatalf("access mode with roster in flight = %v, want loading", mode)
	}

	if result := controller.LoadParticipants(context.Background()); !result.Success {
		t.Fatalf("LoadParticipants() result = %+v, want success", result)
	}
	if controller.AccessMode() != access.ModeFull {
		t.Fatalf("access mode = %v, want full for participant", controller.AccessMode())
	}
}

func TestCampaignGMWithoutRosterRowGetsPreview(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 0), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return []domain.Participant{{ID: 1, SessionID: sessionID, UserID: 3, Role: domain.RolePlayer}}, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 8})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}

	if controller.Role() != domain.RoleGM {
		t.Fatalf("role = %v, want GM from campaign context", controller.Role())
	}
	if controller.IsParticipant() {
		t.Fatal("GM without roster row reported as participant")
	}
	if controller.AccessMode() != access.ModePreview {
		t.Fatalf("access mode = %v, want preview for non-participant GM", controller.AccessMode())
	}
	if !controller.CanManage() {
		t.Fatal("GM cannot manage the session")
	}
}

func TestJoinRespectsCapacity(t *testing.T) {
	// PLANNED session with maxPlayers 2 and one player on the roster: the
	// second join succeeds, the third is rejected locally.
	roster := []domain.Participant{{ID: 1, SessionID: 5, UserID: 3, Role: domain.RolePlayer}}
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 2), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return roster, nil
		},
		joinSession: func(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error) {
			return domain.Participant{ID: 2, SessionID: sessionID, UserID: 4, Role: domain.RolePlayer, CharacterName: characterName}, nil
		},
	}
	second := newSessionController(remote, campaignContext(), domain.User{ID: 4})

	if result := second.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	if !second.CanJoin() {
		t.Fatal("second player cannot join, want eligible")
	}
	if result := second.Join(context.Background(), "Mira"); !result.Success {
		t.Fatalf("Join() result = %+v, want success", result)
	}
	snapshot, _ := second.Snapshot()
	if len(snapshot.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(snapshot.Participants))
	}

	// The third user sees the full roster.
	roster = snapshot.Participants
	third := newSessionController(remote, campaignContext(), domain.User{ID: 6})
	remote.joinSession = func(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error) {
		t.Error("join call reached the remote service past a full roster")
		return domain.Participant{}, nil
	}
	if result := third.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	if third.CanJoin() {
		t.Fatal("third player eligible on a full session")
	}
	result := third.Join(context.Background(), "")
	if result.Success {
		t.Fatal("third join succeeded past capacity")
	}
	if result.Err.Code != apperrors.CodeSessionFull {
		t.Fatalf("third join code = %v, want session full", result.Err.Code)
	}
	if got, _ := third.Snapshot(); len(got.Participants) != 2 {
		t.Fatalf("participants after rejected join = %d, want 2", len(got.Participants))
	}
}

func TestJoinRejectedOutsidePlanned(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			session := plannedSession(sessionID, 0)
			session.Status = domain.SessionStatusActive
			return session, nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return nil, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 4})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	result := controller.Join(context.Background(), "")
	if result.Success {
		t.Fatal("join succeeded on an active session")
	}
	if result.Err.Code != apperrors.CodeSessionNotJoinable {
		t.Fatalf("join code = %v, want not joinable", result.Err.Code)
	}
}

func TestLeaveRemovesOwnRosterRow(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 0), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return []domain.Participant{
				{ID: 1, SessionID: sessionID, UserID: 3, Role: domain.RolePlayer},
				{ID: 2, SessionID: sessionID, UserID: 4, Role: domain.RolePlayer},
			}, nil
		},
		leaveSession: func(ctx context.Context, sessionID int64) error {
			return nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 4})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	if result := controller.Leave(context.Background()); !result.Success {
		t.Fatalf("Leave() result = %+v, want success", result)
	}

	snapshot, _ := controller.Snapshot()
	if len(snapshot.Participants) != 1 || snapshot.Participants[0].UserID != 3 {
		t.Fatalf("participants = %+v, want only user 3", snapshot.Participants)
	}
	if controller.IsParticipant() {
		t.Fatal("user still reported as participant after leaving")
	}
}

func TestStatusTransitions(t *testing.T) {
	status := domain.SessionStatusPlanned
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			session := plannedSession(sessionID, 0)
			session.Status = status
			return session, nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return nil, nil
		},
		changeSessionStatus: func(ctx context.Context, sessionID int64, next domain.SessionStatus) (domain.Session, error) {
			status = next
			session := plannedSession(sessionID, 0)
			session.Status = next
			return session, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 7})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}

	// PLANNED cannot finish directly.
	result := controller.Finish(context.Background())
	if result.Success {
		t.Fatal("Finish() succeeded from PLANNED")
	}
	if result.Err.Code != apperrors.CodeSessionInvalidStatusTransition {
		t.Fatalf("finish code = %v, want invalid transition", result.Err.Code)
	}

	if result := controller.Start(context.Background()); !result.Success {
		t.Fatalf("Start() result = %+v, want success", result)
	}
	snapshot, _ := controller.Snapshot()
	if snapshot.Session.Status != domain.SessionStatusActive {
		t.Fatalf("status = %v, want active", snapshot.Session.Status)
	}

	// ACTIVE cannot be cancelled.
	if result := controller.Cancel(context.Background()); result.Success {
		t.Fatal("Cancel() succeeded from ACTIVE")
	}

	if result := controller.Finish(context.Background()); !result.Success {
		t.Fatalf("Finish() result = %+v, want success", result)
	}
	snapshot, _ = controller.Snapshot()
	if snapshot.Session.Status != domain.SessionStatusFinished {
		t.Fatalf("status = %v, want finished", snapshot.Session.Status)
	}

	// FINISHED is terminal.
	if result := controller.Start(context.Background()); result.Success {
		t.Fatal("Start() succeeded from FINISHED")
	}
}

func TestStatusChangeRequiresManager(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 0), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return []domain.Participant{{ID: 1, SessionID: sessionID, UserID: 4, Role: domain.RolePlayer}}, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 4})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	result := controller.Start(context.Background())
	if result.Success {
		t.Fatal("player started the session")
	}
	if result.Err.Code != apperrors.CodeManagerRequired {
		t.Fatalf("start code = %v, want manager required", result.Err.Code)
	}
}

func TestOneShotCreatorGetsGM(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return domain.Session{ID: sessionID, CreatorID: 9, Title: "One Shot", Status: domain.SessionStatusPlanned}, nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return nil, nil
		},
	}
	// No campaign API calls expected for a one-shot.
	controller := newSessionController(remote, &fakeCampaignAPI{}, domain.User{ID: 9})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	if controller.Role() != domain.RoleGM {
		t.Fatalf("role = %v, want GM for one-shot creator", controller.Role())
	}
	snapshot, _ := controller.Snapshot()
	if snapshot.CampaignLoaded {
		t.Fatal("one-shot session loaded campaign context")
	}
}

func TestSetParticipantStatusUpdatesRow(t *testing.T) {
	remote := &fakeSessionAPI{
		getSession: func(ctx context.Context, sessionID int64) (domain.Session, error) {
			return plannedSession(sessionID, 0), nil
		},
		listParticipants: func(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
			return []domain.Participant{{ID: 1, SessionID: sessionID, UserID: 3, Role: domain.RolePlayer, Status: domain.ParticipantStatusPending}}, nil
		},
		updateParticipantStatus: func(ctx context.Context, sessionID, participantID int64, status domain.ParticipantStatus) (domain.Participant, error) {
			return domain.Participant{ID: participantID, SessionID: sessionID, UserID: 3, Role: domain.RolePlayer, Status: status}, nil
		},
	}
	controller := newSessionController(remote, campaignContext(), domain.User{ID: 7})

	if result := controller.Open(context.Background(), 5); !result.Success {
		t.Fatalf("Open() result = %+v, want success", result)
	}
	if result := controller.SetParticipantStatus(context.Background(), 1, domain.ParticipantStatusConfirmed); !result.Success {
		t.Fatalf("SetParticipantStatus() result = %+v, want success", result)
	}

	snapshot, _ := controller.Snapshot()
	if snapshot.Participants[0].Status != domain.ParticipantStatusConfirmed {
		t.Fatalf("status = %v, want confirmed", snapshot.Participants[0].Status)
	}

	missing := controller.SetParticipantStatus(context.Background(), 99, domain.ParticipantStatusConfirmed)
	if missing.Success {
		t.Fatal("status change for missing participant succeeded")
	}
	if missing.Err.Code != apperrors.CodeParticipantNotFound {
		t.Fatalf("missing participant code = %v, want not found", missing.Err.Code)
	}
}
