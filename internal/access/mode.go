package access

import (
	"strings"

	"github.com/partykeep/partykeep/internal/domain"
)

// Mode is the UI access mode derived from membership and load state.
type Mode int

const (
	// ModeLoading holds until the entity snapshot has arrived. Deriving
	// preview/full before the fetch completes flashes the wrong surface,
	// so LOADING wins over everything.
	ModeLoading Mode = iota
	// ModePreview is the read-only non-member surface with a gated join action.
	ModePreview
	// ModeFull is the member surface; management views gate further on CanManage.
	ModeFull
)

// ResolveAccessMode maps membership and load state to an access mode.
func ResolveAccessMode(isMember bool, isLoading bool) Mode {
	if isLoading {
		return ModeLoading
	}
	if isMember {
		return ModeFull
	}
	return ModePreview
}

// IsCampaignMember reports campaign membership from raw relations.
//
// Ownership counts as membership whether or not an owner Member row exists.
func IsCampaignMember(campaign domain.Campaign, members []domain.Member, userID int64) bool {
	if userID == 0 {
		return false
	}
	if campaign.OwnerID != 0 && campaign.OwnerID == userID {
		return true
	}
	for _, member := range members {
		if member.UserID == userID {
			return true
		}
	}
	return false
}

// IsSessionParticipant reports session membership from raw Participant rows.
//
// It is deliberately not derived from the resolved role: a campaign GM who
// never joined the roster manages the session but is still shown PREVIEW.
func IsSessionParticipant(participants []domain.Participant, userID int64) bool {
	if userID == 0 {
		return false
	}
	for _, participant := range participants {
		if participant.UserID == userID {
			return true
		}
	}
	return false
}

// ModeLabel returns the string label for an access mode.
func ModeLabel(mode Mode) string {
	switch mode {
	case ModePreview:
		return "PREVIEW"
	case ModeFull:
		return "FULL"
	default:
		return "LOADING"
	}
}

// ModeFromLabel converts a mode label to a Mode value.
func ModeFromLabel(label string) Mode {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PREVIEW":
		return ModePreview
	case "FULL":
		return ModeFull
	default:
		return ModeLoading
	}
}
