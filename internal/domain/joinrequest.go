package domain

import (
	"strings"
	"time"
)

// JoinRequestStatus describes the lifecycle status of a join request.
type JoinRequestStatus int

const (
	// JoinRequestStatusUnspecified represents an invalid status value.
	JoinRequestStatusUnspecified JoinRequestStatus = iota
	// JoinRequestStatusPending indicates a request awaiting a manager decision.
	JoinRequestStatusPending
	// JoinRequestStatusApproved indicates an accepted request.
	JoinRequestStatusApproved
	// JoinRequestStatusRejected indicates a declined request.
	JoinRequestStatusRejected
)

// Terminal reports whether the status admits no further transitions.
func (s JoinRequestStatus) Terminal() bool {
	return s == JoinRequestStatusApproved || s == JoinRequestStatusRejected
}

// JoinRequest represents a user's request to join a campaign.
//
// At most one PENDING request exists per (campaign, user) pair; the server
// enforces it and the lifecycle guard rejects duplicates before the wire.
type JoinRequest struct {
	ID         int64
	CampaignID int64
	UserID     int64
	Message    string
	Status     JoinRequestStatus
	CreatedAt  time.Time
}

// JoinRequestStatusLabel returns the string label for a join request status.
func JoinRequestStatusLabel(status JoinRequestStatus) string {
	switch status {
	case JoinRequestStatusPending:
		return "PENDING"
	case JoinRequestStatusApproved:
		return "APPROVED"
	case JoinRequestStatusRejected:
		return "REJECTED"
	default:
		return "UNSPECIFIED"
	}
}

// JoinRequestStatusFromLabel converts a status label to a JoinRequestStatus value.
func JoinRequestStatusFromLabel(label string) JoinRequestStatus {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "PENDING":
		return JoinRequestStatusPending
	case "APPROVED":
		return JoinRequestStatusApproved
	case "REJECTED":
		return JoinRequestStatusRejected
	default:
		return JoinRequestStatusUnspecified
	}
}

// NormalizeJoinRequestMessage trims a join request message for submission.
func NormalizeJoinRequestMessage(message string) string {
	return strings.TrimSpace(message)
}
