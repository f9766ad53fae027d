package domain

import (
	"strings"
	"time"
)

// ParticipantStatus tags a participant's attendance state.
//
// Statuses are independent tags, not a strict sequence; managers may move a
// participant between any of them.
type ParticipantStatus int

const (
	// ParticipantStatusUnspecified represents an invalid status value.
	ParticipantStatusUnspecified ParticipantStatus = iota
	// ParticipantStatusPending indicates an unconfirmed roster spot.
	ParticipantStatusPending
	// ParticipantStatusConfirmed indicates a confirmed roster spot.
	ParticipantStatusConfirmed
	// ParticipantStatusDeclined indicates the participant opted out.
	ParticipantStatusDeclined
	// ParticipantStatusAttended indicates the participant showed up.
	ParticipantStatusAttended
	// ParticipantStatusNoShow indicates the participant did not show up.
	ParticipantStatusNoShow
)

// Participant represents one user's roster row in a session.
type Participant struct {
	ID        int64
	SessionID int64
	UserID    int64
	Role      Role
	Status    ParticipantStatus
	// CharacterName is the optional character the participant plays.
	CharacterName string
	CreatedAt     time.Time
}

// ParticipantStatusLabel returns the string label for a participant status.
func ParticipantStatusLabel(status ParticipantStatus) string {
	switch status {
	case ParticipantStatusPending:
		return "PENDING"
	case ParticipantStatusConfirmed:
		return "CONFIRMED"
	case ParticipantStatusDeclined:
		return "DECLINED"
	case ParticipantStatusAttended:
		return "ATTENDED"
	case ParticipantStatusNoShow:
		return "NO_SHOW"
	default:
		return "UNSPECIFIED"
	}
}

// ParticipantStatusFromLabel converts a status label to a ParticipantStatus value.
func ParticipantStatusFromLabel(label string) ParticipantStatus {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PENDING":
		return ParticipantStatusPending
	case "CONFIRMED":
		return ParticipantStatusConfirmed
	case "DECLINED":
		return ParticipantStatusDeclined
	case "ATTENDED":
		return ParticipantStatusAttended
	case "NO_SHOW":
		return ParticipantStatusNoShow
	default:
		return ParticipantStatusUnspecified
	}
}

// NormalizeCharacterName trims a character name for submission.
func NormalizeCharacterName(name string) string {
	return strings.TrimSpace(name)
}
