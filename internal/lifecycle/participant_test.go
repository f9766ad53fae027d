package lifecycle

import (
	"errors"
	"testing"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

func TestValidateJoinSession_PlannedWithFreeSeat(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned, MaxPlayers: 2}
	participants := []domain.Participant{{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer}}

	if err := ValidateJoinSession(session, participants, 12); err != nil {
		t.Fatalf("join = %v, want nil", err)
	}
}

func TestValidateJoinSession_CapacityEnforced(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned, MaxPlayers: 2}
	participants := []domain.Participant{
		{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer},
		{ID: 2, SessionID: 5, UserID: 12, Role: domain.RolePlayer},
	}

	err := ValidateJoinSession(session, participants, 13)
	if apperrors.CodeOf(err) != apperrors.CodeSessionFull {
		t.Fatalf("full join code = %s, want %s", apperrors.CodeOf(err), apperrors.CodeSessionFull)
	}
}

func TestValidateJoinSession_GMSeatDoesNotConsumeCapacity(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned, MaxPlayers: 1}
	participants := []domain.Participant{{ID: 1, SessionID: 5, UserID: 11, Role: domain.RoleGM}}

	if err := ValidateJoinSession(session, participants, 12); err != nil {
		t.Fatalf("join with gm-only roster = %v, want nil", err)
	}
}

func TestValidateJoinSession_UnlimitedWhenMaxUnset(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned}
	participants := make([]domain.Participant, 0, 20)
	for i := int64(1); i <= 20; i++ {
		participants = append(participants, domain.Participant{ID: i, SessionID: 5, UserID: 100 + i, Role: domain.RolePlayer})
	}

	if err := ValidateJoinSession(session, participants, 99); err != nil {
		t.Fatalf("join unlimited = %v, want nil", err)
	}
}

func TestValidateJoinSession_RejectsOutsidePlanned(t *testing.T) {
	for _, status := range []domain.SessionStatus{
		domain.SessionStatusActive,
		domain.SessionStatusFinished,
		domain.SessionStatusCancelled,
	} {
		session := domain.Session{ID: 5, Status: status}
		if err := ValidateJoinSession(session, nil, 12); !errors.Is(err, ErrSessionNotJoinable) {
			t.Fatalf("join %s = %v, want %v", domain.SessionStatusLabel(status), err, ErrSessionNotJoinable)
		}
	}
}

func TestValidateJoinSession_RejectsDoubleJoin(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned}
	participants := []domain.Participant{{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer}}

	if err := ValidateJoinSession(session, participants, 11); !errors.Is(err, ErrParticipantAlreadyJoined) {
		t.Fatalf("double join = %v, want %v", err, ErrParticipantAlreadyJoined)
	}
}

func TestValidateLeaveSession(t *testing.T) {
	participants := []domain.Participant{{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer}}

	planned := domain.Session{ID: 5, Status: domain.SessionStatusPlanned}
	if err := ValidateLeaveSession(planned, participants, 11); err != nil {
		t.Fatalf("leave planned = %v, want nil", err)
	}
	if err := ValidateLeaveSession(planned, participants, 12); !errors.Is(err, ErrParticipantNotFound) {
		t.Fatalf("leave without row = %v, want %v", err, ErrParticipantNotFound)
	}

	active := domain.Session{ID: 5, Status: domain.SessionStatusActive}
	if err := ValidateLeaveSession(active, participants, 11); !errors.Is(err, ErrSessionNotPlanned) {
		t.Fatalf("leave active = %v, want %v", err, ErrSessionNotPlanned)
	}
}

func TestValidateRemoveParticipant(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusActive}
	target := domain.Participant{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer}
	participants := []domain.Participant{target}

	// A manager may remove others regardless of session status.
	if err := ValidateRemoveParticipant(session, participants, domain.RoleGM, 10, target); err != nil {
		t.Fatalf("manager remove = %v, want nil", err)
	}
	if err := ValidateRemoveParticipant(session, participants, domain.RolePlayer, 12, target); !errors.Is(err, ErrManagerRequired) {
		t.Fatalf("player remove other = %v, want %v", err, ErrManagerRequired)
	}
	// Removing oneself follows the leave rules, so a frozen roster blocks it.
	if err := ValidateRemoveParticipant(session, participants, domain.RolePlayer, 11, target); !errors.Is(err, ErrSessionNotPlanned) {
		t.Fatalf("self remove active = %v, want %v", err, ErrSessionNotPlanned)
	}
}

func TestValidateParticipantStatusChange(t *testing.T) {
	if err := ValidateParticipantStatusChange(domain.RolePlayer, domain.ParticipantStatusConfirmed); !errors.Is(err, ErrManagerRequired) {
		t.Fatalf("player tag = %v, want %v", err, ErrManagerRequired)
	}
	if err := ValidateParticipantStatusChange(domain.RoleGM, domain.ParticipantStatusUnspecified); !errors.Is(err, ErrParticipantInvalidStatus) {
		t.Fatalf("unspecified tag = %v, want %v", err, ErrParticipantInvalidStatus)
	}
	// Tags are unordered: NO_SHOW is reachable without a prior CONFIRMED.
	if err := ValidateParticipantStatusChange(domain.RoleOwner, domain.ParticipantStatusNoShow); err != nil {
		t.Fatalf("owner no-show tag = %v, want nil", err)
	}
}

func TestCanJoinSession(t *testing.T) {
	session := domain.Session{ID: 5, Status: domain.SessionStatusPlanned, MaxPlayers: 1}
	if !CanJoinSession(session, nil, 12) {
		t.Fatalf("eligible user cannot join")
	}
	if CanJoinSession(session, nil, 0) {
		t.Fatalf("anonymous user can join")
	}
	full := []domain.Participant{{ID: 1, SessionID: 5, UserID: 11, Role: domain.RolePlayer}}
	if CanJoinSession(session, full, 12) {
		t.Fatalf("join allowed on a full session")
	}
}
