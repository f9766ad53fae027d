package domain

import (
	"strings"
	"time"
)

// Visibility describes who can discover and join a campaign.
//
// Visibility policy is enforced server-side; the client carries the value for
// display only and never re-derives join rules from it.
type Visibility int

const (
	// VisibilityUnspecified represents an invalid visibility value.
	VisibilityUnspecified Visibility = iota
	// VisibilityPublic indicates the campaign is publicly listed.
	VisibilityPublic
	// VisibilityPrivate indicates the campaign is invisible to non-members.
	VisibilityPrivate
	// VisibilityLinkOnly indicates the campaign is reachable by invite link.
	VisibilityLinkOnly
)

// Campaign represents metadata for a campaign.
type Campaign struct {
	ID         int64
	Title      string
	Visibility Visibility
	OwnerID    int64
	InviteCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member represents one user's membership row in a campaign.
//
// The owner may or may not also appear as a Member row; role resolution
// treats both representations as OWNER.
type Member struct {
	ID         int64
	CampaignID int64
	UserID     int64
	Role       Role
	JoinedAt   time.Time
}

// VisibilityLabel returns the string label for a visibility value.
func VisibilityLabel(visibility Visibility) string {
	switch visibility {
	case VisibilityPublic:
		return "PUBLIC"
	case VisibilityPrivate:
		return "PRIVATE"
	case VisibilityLinkOnly:
		return "LINK_ONLY"
	default:
		return "UNSPECIFIED"
	}
}

// VisibilityFromLabel converts a visibility label to a Visibility value.
func VisibilityFromLabel(label string) Visibility {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PUBLIC":
		return VisibilityPublic
	case "PRIVATE":
		return VisibilityPrivate
	case "LINK_ONLY":
		return VisibilityLinkOnly
	default:
		return VisibilityUnspecified
	}
}
