package lifecycle

import (
	"fmt"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
)

var (
	// ErrJoinRequestAlreadyPending indicates a duplicate pending request.
	ErrJoinRequestAlreadyPending = apperrors.New(apperrors.CodeJoinRequestAlreadyPending, "a pending join request already exists")
	// ErrJoinRequestAlreadyMember indicates the requester is already a member.
	ErrJoinRequestAlreadyMember = apperrors.New(apperrors.CodeJoinRequestAlreadyMember, "already a campaign member")
	// ErrJoinRequestAlreadyResolved indicates the request reached a terminal status.
	ErrJoinRequestAlreadyResolved = apperrors.New(apperrors.CodeJoinRequestAlreadyResolved, "join request is already resolved")
)

// ValidateSubmitJoinRequest guards a non-member's request to join a campaign.
//
// Visibility policy stays opaque to the client: submission is always offered
// to eligible non-members and the server decides immediate membership versus
// a pending request.
func ValidateSubmitJoinRequest(campaign domain.Campaign, members []domain.Member, requests []domain.JoinRequest, userID int64) error {
	if campaign.OwnerID != 0 && campaign.OwnerID == userID {
		return ErrJoinRequestAlreadyMember
	}
	for _, member := range members {
		if member.UserID == userID {
			return ErrJoinRequestAlreadyMember
		}
	}
	for _, request := range requests {
		if request.UserID == userID && request.Status == domain.JoinRequestStatusPending {
			return ErrJoinRequestAlreadyPending
		}
	}
	return nil
}

// ValidateResolveJoinRequest guards a manager's approve/reject decision.
//
// PENDING→APPROVED and PENDING→REJECTED are the only transitions; terminal
// statuses are immutable, so approving twice never yields a second Member row.
func ValidateResolveJoinRequest(request domain.JoinRequest, actorRole domain.Role, target domain.JoinRequestStatus) error {
	if err := RequireManager(actorRole); err != nil {
		return err
	}
	if target != domain.JoinRequestStatusApproved && target != domain.JoinRequestStatusRejected {
		return apperrors.WithMetadata(
			apperrors.CodeJoinRequestInvalidTarget,
			fmt.Sprintf("join request cannot move to %s", domain.JoinRequestStatusLabel(target)),
			map[string]string{"Target": domain.JoinRequestStatusLabel(target)},
		)
	}
	if request.Status.Terminal() {
		return ErrJoinRequestAlreadyResolved
	}
	if request.Status != domain.JoinRequestStatusPending {
		return apperrors.New(apperrors.CodeJoinRequestInvalidTarget, "join request is not pending")
	}
	return nil
}

// ApprovalRole normalizes the role a manager grants on approval.
//
// The approver may supply GM or PLAYER; anything else defaults to PLAYER.
func ApprovalRole(role domain.Role) domain.Role {
	if role == domain.RoleGM {
		return domain.RoleGM
	}
	return domain.RolePlayer
}
