package lifecycle

import (
	"fmt"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

// ValidateSessionStatusTransition guards manager-driven play progression.
//
// The machine is PLANNED→ACTIVE→FINISHED with PLANNED→CANCELLED as the only
// branch; ACTIVE, FINISHED and CANCELLED never transition back to PLANNED.
func ValidateSessionStatusTransition(current, next domain.SessionStatus, actorRole domain.Role) error {
	if err := RequireManager(actorRole); err != nil {
		return err
	}

	switch current {
	case domain.SessionStatusPlanned:
		switch next {
		case domain.SessionStatusActive, domain.SessionStatusCancelled:
			return nil
		default:
			return newStatusTransitionError(current, next)
		}
	case domain.SessionStatusActive:
		switch next {
		case domain.SessionStatusFinished:
			return nil
		default:
			return newStatusTransitionError(current, next)
		}
	default:
		return newStatusTransitionError(current, next)
	}
}

// newStatusTransitionError creates a structured error for disallowed session
// status transitions.
func newStatusTransitionError(current, next domain.SessionStatus) *apperrors.Error {
	currentLabel := domain.SessionStatusLabel(current)
	nextLabel := domain.SessionStatusLabel(next)
	return apperrors.WithMetadata(
		apperrors.CodeSessionInvalidStatusTransition,
		fmt.Sprintf("session status %s does not allow transition to %s", currentLabel, nextLabel),
		map[string]string{"Current": currentLabel, "Next": nextLabel},
	)
}
