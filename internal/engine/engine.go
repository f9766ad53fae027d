package engine

import (
	"github.com/partykeep/partykeep/internal/auth"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

// Loading keys exposed to the presentation layer. The global key covers
// entity fetches; granular keys let views spin only the affected region.
const (
	KeyLoading             = "isLoading"
	KeyLoadingMembers      = "isLoadingMembers"
	KeyLoadingJoinRequests = "isLoadingJoinRequests"
	KeyLoadingParticipants = "isLoadingParticipants"
	KeyLoadingCampaigns    = "isLoadingCampaigns"
	KeySaving              = "isSaving"
	KeySubmitting          = "isSubmitting"
)

// IdentityProvider yields the signed-in user, if any. *auth.Source satisfies
// it.
type IdentityProvider interface {
	Identity() (auth.Identity, bool)
}

// errStaleTarget marks a response that resolved after the user navigated
// away. The orchestrator discards it without touching the error slot.
var errStaleTarget = apperrors.New(apperrors.CodeStaleTarget, "response no longer targets the active entity")

func userID(identity IdentityProvider) int64 {
	if identity == nil {
		return 0
	}
	id, ok := identity.Identity()
	if !ok || !id.User.Known() {
		return 0
	}
	return id.User.ID
}
