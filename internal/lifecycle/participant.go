package lifecycle

import (
	"fmt"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

var (
	// ErrParticipantAlreadyJoined indicates the user already holds a roster row.
	ErrParticipantAlreadyJoined = apperrors.New(apperrors.CodeParticipantAlreadyJoined, "already a session participant")
	// ErrParticipantNotFound indicates the user holds no roster row.
	ErrParticipantNotFound = apperrors.New(apperrors.CodeParticipantNotFound, "participant not found")
	// ErrSessionNotJoinable indicates the session no longer accepts joins.
	ErrSessionNotJoinable = apperrors.New(apperrors.CodeSessionNotJoinable, "session is not open for joining")
	// ErrSessionNotPlanned indicates the roster is frozen outside PLANNED.
	ErrSessionNotPlanned = apperrors.New(apperrors.CodeSessionNotPlanned, "session is no longer planned")
	// ErrParticipantInvalidStatus indicates a missing participant status tag.
	ErrParticipantInvalidStatus = apperrors.New(apperrors.CodeParticipantInvalidStatus, "participant status is required")
)

// PlayerCount counts PLAYER-role roster rows; the GM seat never consumes
// capacity.
func PlayerCount(participants []domain.Participant) int {
	count := 0
	for _, participant := range participants {
		if participant.Role == domain.RolePlayer || participant.Role == domain.RoleUnspecified {
			count++
		}
	}
	return count
}

// ValidateJoinSession guards creating the caller's own roster row.
//
// Joining requires a PLANNED session with a free player seat.
func ValidateJoinSession(session domain.Session, participants []domain.Participant, userID int64) error {
	for _, participant := range participants {
		if participant.UserID == userID {
			return ErrParticipantAlreadyJoined
		}
	}
	if session.Status != domain.SessionStatusPlanned {
		return ErrSessionNotJoinable
	}
	if session.MaxPlayers > 0 && PlayerCount(participants) >= session.MaxPlayers {
		return apperrors.WithMetadata(
			apperrors.CodeSessionFull,
			fmt.Sprintf("session is full (%d players max)", session.MaxPlayers),
			map[string]string{"MaxPlayers": fmt.Sprintf("%d", session.MaxPlayers)},
		)
	}
	return nil
}

// ValidateLeaveSession guards removing the caller's own roster row.
func ValidateLeaveSession(session domain.Session, participants []domain.Participant, userID int64) error {
	found := false
	for _, participant := range participants {
		if participant.UserID == userID {
			found = true
			break
		}
	}
	if !found {
		return ErrParticipantNotFound
	}
	if session.Status != domain.SessionStatusPlanned {
		return ErrSessionNotPlanned
	}
	return nil
}

// ValidateRemoveParticipant guards removing a roster row.
//
// Removing oneself follows the leave rules; managers may remove anyone else
// regardless of session status.
func ValidateRemoveParticipant(session domain.Session, participants []domain.Participant, actorRole domain.Role, actorUserID int64, target domain.Participant) error {
	if target.UserID == actorUserID {
		return ValidateLeaveSession(session, participants, actorUserID)
	}
	return RequireManager(actorRole)
}

// ValidateParticipantStatusChange guards manager-only attendance tagging.
//
// Status tags carry no ordering; any specified tag is reachable from any
// other.
func ValidateParticipantStatusChange(actorRole domain.Role, status domain.ParticipantStatus) error {
	if err := RequireManager(actorRole); err != nil {
		return err
	}
	if status == domain.ParticipantStatusUnspecified {
		return ErrParticipantInvalidStatus
	}
	return nil
}

// CanJoinSession reports join eligibility without surfacing the reason.
func CanJoinSession(session domain.Session, participants []domain.Participant, userID int64) bool {
	if userID == 0 {
		return false
	}
	return ValidateJoinSession(session, participants, userID) == nil
}
