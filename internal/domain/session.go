package domain

import (
	"strings"
	"time"
)

// SessionStatus describes the play lifecycle of a session.
type SessionStatus int

const (
	// SessionStatusUnspecified represents an invalid session status value.
	SessionStatusUnspecified SessionStatus = iota
	// SessionStatusPlanned indicates a session open for roster changes.
	SessionStatusPlanned
	// SessionStatusActive indicates a session in play.
	SessionStatusActive
	// SessionStatusFinished indicates a concluded session.
	SessionStatusFinished
	// SessionStatusCancelled indicates a session called off before play.
	SessionStatusCancelled
)

// Session represents metadata for a scheduled play session.
type Session struct {
	ID int64
	// CampaignID is zero for one-shot sessions without a parent campaign.
	CampaignID int64
	CreatorID  int64
	Title      string
	Status     SessionStatus
	StartsAt   time.Time
	Duration   time.Duration
	// MaxPlayers caps PLAYER-role participants; zero means unlimited.
	MaxPlayers int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OneShot reports whether the session has no parent campaign.
func (s Session) OneShot() bool {
	return s.CampaignID == 0
}

// SessionStatusLabel returns the string label for a session status.
func SessionStatusLabel(status SessionStatus) string {
	switch status {
	case SessionStatusPlanned:
		return "PLANNED"
	case SessionStatusActive:
		return "ACTIVE"
	case SessionStatusFinished:
		return "FINISHED"
	case SessionStatusCancelled:
		return "CANCELLED"
	default:
		return "UNSPECIFIED"
	}
}

// SessionStatusFromLabel converts a status label to a SessionStatus value.
func SessionStatusFromLabel(label string) SessionStatus {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PLANNED":
		return SessionStatusPlanned
	case "ACTIVE":
		return SessionStatusActive
	case "FINISHED":
		return SessionStatusFinished
	case "CANCELLED":
		return SessionStatusCancelled
	default:
		return SessionStatusUnspecified
	}
}
