package lifecycle

import (
	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

var (
	// ErrManagerRequired indicates the caller lacks OWNER/GM rights.
	ErrManagerRequired = apperrors.New(apperrors.CodeManagerRequired, "owner or gm role required")
	// ErrMemberRequired indicates the caller is not a member.
	ErrMemberRequired = apperrors.New(apperrors.CodeMemberRequired, "membership required")
)

// RequireManager rejects callers without management rights.
func RequireManager(role domain.Role) error {
	if !role.Manager() {
		return ErrManagerRequired
	}
	return nil
}

// RequireMember rejects callers outside the entity's membership.
func RequireMember(isMember bool) error {
	if !isMember {
		return ErrMemberRequired
	}
	return nil
}
