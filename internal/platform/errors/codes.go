// Package errors provides structured error handling for the client engine.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Campaign errors
	CodeCampaignTitleEmpty        Code = "CAMPAIGN_TITLE_EMPTY"
	CodeCampaignInvalidVisibility Code = "CAMPAIGN_INVALID_VISIBILITY"

	// Member errors
	CodeMemberInvalidRole   Code = "MEMBER_INVALID_ROLE"
	CodeMemberAlreadyExists Code = "MEMBER_ALREADY_EXISTS"
	CodeMemberNotFound      Code = "MEMBER_NOT_FOUND"

	// Join request errors
	CodeJoinRequestAlreadyPending  Code = "JOIN_REQUEST_ALREADY_PENDING"
	CodeJoinRequestAlreadyMember   Code = "JOIN_REQUEST_ALREADY_MEMBER"
	CodeJoinRequestAlreadyResolved Code = "JOIN_REQUEST_ALREADY_RESOLVED"
	CodeJoinRequestInvalidTarget   Code = "JOIN_REQUEST_INVALID_TARGET"

	// Session errors
	CodeSessionNotJoinable             Code = "SESSION_NOT_JOINABLE"
	CodeSessionFull                    Code = "SESSION_FULL"
	CodeSessionNotPlanned              Code = "SESSION_NOT_PLANNED"
	CodeSessionInvalidStatusTransition Code = "SESSION_INVALID_STATUS_TRANSITION"

	// Participant errors
	CodeParticipantAlreadyJoined Code = "PARTICIPANT_ALREADY_JOINED"
	CodeParticipantNotFound      Code = "PARTICIPANT_NOT_FOUND"
	CodeParticipantInvalidStatus Code = "PARTICIPANT_INVALID_STATUS"

	// Invite code errors
	CodeInviteCodeEmpty Code = "INVITE_CODE_EMPTY"

	// Authorization errors
	CodeManagerRequired Code = "MANAGER_REQUIRED"
	CodeMemberRequired  Code = "MEMBER_REQUIRED"
	CodeForbidden       Code = "FORBIDDEN"

	// Action errors
	CodeActionInFlight Code = "ACTION_IN_FLIGHT"

	// Remote errors
	CodeRemoteDeclined   Code = "REMOTE_DECLINED"
	CodeTransportFailure Code = "TRANSPORT_FAILURE"
	CodeDecodeFailure    Code = "DECODE_FAILURE"
	CodeNotFound         Code = "NOT_FOUND"

	// Cache errors
	CodeStaleTarget Code = "STALE_TARGET"
)

// Kind classifies an error code for presentation-layer branching.
type Kind int

const (
	// KindUnknown represents an unclassified error.
	KindUnknown Kind = iota
	// KindValidation indicates a precondition or input failure; the
	// lifecycle state is untouched and the message renders inline.
	KindValidation
	// KindAuthorization indicates the caller lacked a sufficient role.
	KindAuthorization
	// KindTransport indicates a transport or server fault safe to retry.
	KindTransport
	// KindStale indicates a response for an entity no longer active;
	// stale failures are discarded, never surfaced.
	KindStale
)

// ErrorKind maps a domain code to its presentation classification.
func (c Code) ErrorKind() Kind {
	switch c {
	case CodeCampaignTitleEmpty,
		CodeCampaignInvalidVisibility,
		CodeMemberInvalidRole,
		CodeMemberAlreadyExists,
		CodeMemberNotFound,
		CodeJoinRequestAlreadyPending,
		CodeJoinRequestAlreadyMember,
		CodeJoinRequestAlreadyResolved,
		CodeJoinRequestInvalidTarget,
		CodeSessionNotJoinable,
		CodeSessionFull,
		CodeSessionNotPlanned,
		CodeSessionInvalidStatusTransition,
		CodeParticipantAlreadyJoined,
		CodeParticipantNotFound,
		CodeParticipantInvalidStatus,
		CodeInviteCodeEmpty,
		CodeActionInFlight,
		CodeRemoteDeclined,
		CodeNotFound:
		return KindValidation
	case CodeManagerRequired,
		CodeMemberRequired,
		CodeForbidden:
		return KindAuthorization
	case CodeTransportFailure,
		CodeDecodeFailure:
		return KindTransport
	case CodeStaleTarget:
		return KindStale
	default:
		return KindUnknown
	}
}
