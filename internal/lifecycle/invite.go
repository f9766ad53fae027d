package lifecycle

import (
	"strings"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

// ErrInviteCodeEmpty indicates a missing invite code.
var ErrInviteCodeEmpty = apperrors.New(apperrors.CodeInviteCodeEmpty, "invite code is required")

// ValidateRotateInviteCode guards regenerating a campaign's invite code.
//
// A campaign holds exactly one active code; rotation replaces it atomically
// on the server with no history kept.
func ValidateRotateInviteCode(actorRole domain.Role) error {
	return RequireManager(actorRole)
}

// NormalizeInviteCode trims and validates an invite code for redemption.
func NormalizeInviteCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", ErrInviteCodeEmpty
	}
	return code, nil
}
