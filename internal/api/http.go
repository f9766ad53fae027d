package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/partykeep/partykeep/internal/domain"
	apperrors "github.com/partykeep/partykeep/internal/platform/errors"
	"github.com/partykeep/partykeep/internal/platform/id"
)

// TokenProvider supplies the bearer token for outgoing requests. An empty
// return means the call goes out unauthenticated.
type TokenProvider func() string

// Client calls the remote JSON API over HTTP. It implements CampaignAPI and
// SessionAPI.
type Client struct {
	baseURL    string
	token      TokenProvider
	httpClient *http.Client
}

// NewClient creates a client that calls the API rooted at baseURL.
func NewClient(baseURL string, token TokenProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// do issues one request and decodes the envelope into out. Declared
// failures, authorization refusals, and transport faults all come back as
// typed errors so callers branch on codes, not on HTTP details.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeDecodeFailure, "encode request body", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTransportFailure, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID, err := id.NewID(); err == nil {
		req.Header.Set("X-Request-Id", requestID)
	}
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeTransportFailure, "remote call failed", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.New(apperrors.CodeForbidden, "not allowed")
	case http.StatusNotFound:
		return apperrors.New(apperrors.CodeNotFound, "not found")
	}

	var envelope Envelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		if resp.StatusCode >= 400 {
			return apperrors.New(apperrors.CodeTransportFailure, fmt.Sprintf("remote returned %s", resp.Status))
		}
		return apperrors.Wrap(apperrors.CodeDecodeFailure, "decode response", err)
	}

	if !envelope.Success {
		message := strings.TrimSpace(envelope.Message)
		if message == "" {
			message = "the request could not be completed"
		}
		return apperrors.New(apperrors.CodeRemoteDeclined, message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return apperrors.Wrap(apperrors.CodeDecodeFailure, "decode response payload", err)
		}
	}
	return nil
}

// ListCampaigns returns the campaigns visible to the authenticated user.
func (c *Client) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var payload struct {
		Campaigns []campaignPayload `json:"campaigns"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/campaigns", nil, &payload); err != nil {
		return nil, err
	}
	campaigns := make([]domain.Campaign, 0, len(payload.Campaigns))
	for _, item := range payload.Campaigns {
		campaigns = append(campaigns, item.toDomain())
	}
	return campaigns, nil
}

// GetCampaign fetches one campaign by id.
func (c *Client) GetCampaign(ctx context.Context, campaignID int64) (domain.Campaign, error) {
	var payload struct {
		Campaign campaignPayload `json:"campaign"`
	}
	path := fmt.Sprintf("/api/campaigns/%d", campaignID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return domain.Campaign{}, err
	}
	return payload.Campaign.toDomain(), nil
}

// UpdateCampaign applies a partial campaign update.
func (c *Client) UpdateCampaign(ctx context.Context, in CampaignUpdateInput) (domain.Campaign, error) {
	body := struct {
		Title      *string `json:"title,omitempty"`
		Visibility *string `json:"visibility,omitempty"`
	}{Title: in.Title}
	if in.Visibility != nil {
		label := domain.VisibilityLabel(*in.Visibility)
		body.Visibility = &label
	}

	var payload struct {
		Campaign campaignPayload `json:"campaign"`
	}
	path := fmt.Sprintf("/api/campaigns/%d", in.CampaignID)
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return domain.Campaign{}, err
	}
	return payload.Campaign.toDomain(), nil
}

// DeleteCampaign removes a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, campaignID int64) error {
	path := fmt.Sprintf("/api/campaigns/%d", campaignID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListMembers returns the member rows of a campaign.
func (c *Client) ListMembers(ctx context.Context, campaignID int64) ([]domain.Member, error) {
	var payload struct {
		Members []memberPayload `json:"members"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/members", campaignID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	members := make([]domain.Member, 0, len(payload.Members))
	for _, item := range payload.Members {
		members = append(members, item.toDomain())
	}
	return members, nil
}

// AddMember adds a user to a campaign with the given role.
func (c *Client) AddMember(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error) {
	body := struct {
		UserID int64  `json:"user_id"`
		Role   string `json:"role"`
	}{UserID: userID, Role: domain.RoleLabel(role)}

	var payload struct {
		Member memberPayload `json:"member"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/members", campaignID)
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return domain.Member{}, err
	}
	return payload.Member.toDomain(), nil
}

// RemoveMember removes a user from a campaign.
func (c *Client) RemoveMember(ctx context.Context, campaignID, userID int64) error {
	path := fmt.Sprintf("/api/campaigns/%d/members/%d", campaignID, userID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ChangeMemberRole updates a member's role.
func (c *Client) ChangeMemberRole(ctx context.Context, campaignID, userID int64, role domain.Role) (domain.Member, error) {
	body := struct {
		Role string `json:"role"`
	}{Role: domain.RoleLabel(role)}

	var payload struct {
		Member memberPayload `json:"member"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/members/%d", campaignID, userID)
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return domain.Member{}, err
	}
	return payload.Member.toDomain(), nil
}

// RegenerateInviteCode rotates the campaign invite code and returns the new
// value. The previous code stops working server-side.
func (c *Client) RegenerateInviteCode(ctx context.Context, campaignID int64) (string, error) {
	var payload struct {
		InviteCode string `json:"invite_code"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/invite-code", campaignID)
	if err := c.do(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return "", err
	}
	return payload.InviteCode, nil
}

// JoinByInviteCode redeems an invite code for membership.
func (c *Client) JoinByInviteCode(ctx context.Context, code string) (JoinOutcome, error) {
	body := struct {
		Code string `json:"code"`
	}{Code: code}

	var payload struct {
		Campaign campaignPayload `json:"campaign"`
		Member   memberPayload   `json:"member"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/invites/join", body, &payload); err != nil {
		return JoinOutcome{}, err
	}
	return JoinOutcome{
		Campaign: payload.Campaign.toDomain(),
		Member:   payload.Member.toDomain(),
	}, nil
}

// SubmitJoinRequest asks to join a campaign the user cannot enter directly.
func (c *Client) SubmitJoinRequest(ctx context.Context, campaignID int64, message string) (domain.JoinRequest, error) {
	body := struct {
		Message string `json:"message,omitempty"`
	}{Message: message}

	var payload struct {
		Request joinRequestPayload `json:"request"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/join-requests", campaignID)
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return domain.JoinRequest{}, err
	}
	return payload.Request.toDomain(), nil
}

// ListJoinRequests returns the join requests of a campaign.
func (c *Client) ListJoinRequests(ctx context.Context, campaignID int64) ([]domain.JoinRequest, error) {
	var payload struct {
		Requests []joinRequestPayload `json:"requests"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/join-requests", campaignID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	requests := make([]domain.JoinRequest, 0, len(payload.Requests))
	for _, item := range payload.Requests {
		requests = append(requests, item.toDomain())
	}
	return requests, nil
}

// ApproveJoinRequest approves a pending request, granting the given role.
func (c *Client) ApproveJoinRequest(ctx context.Context, campaignID, requestID int64, role domain.Role) (ApprovalOutcome, error) {
	body := struct {
		Role string `json:"role"`
	}{Role: domain.RoleLabel(role)}

	var payload struct {
		Request joinRequestPayload `json:"request"`
		Member  memberPayload      `json:"member"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/join-requests/%d/approve", campaignID, requestID)
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return ApprovalOutcome{}, err
	}
	return ApprovalOutcome{
		Request: payload.Request.toDomain(),
		Member:  payload.Member.toDomain(),
	}, nil
}

// RejectJoinRequest rejects a pending request.
func (c *Client) RejectJoinRequest(ctx context.Context, campaignID, requestID int64) (domain.JoinRequest, error) {
	var payload struct {
		Request joinRequestPayload `json:"request"`
	}
	path := fmt.Sprintf("/api/campaigns/%d/join-requests/%d/reject", campaignID, requestID)
	if err := c.do(ctx, http.MethodPost, path, nil, &payload); err != nil {
		return domain.JoinRequest{}, err
	}
	return payload.Request.toDomain(), nil
}

// GetSession fetches one session by id.
func (c *Client) GetSession(ctx context.Context, sessionID int64) (domain.Session, error) {
	var payload struct {
		Session sessionPayload `json:"session"`
	}
	path := fmt.Sprintf("/api/sessions/%d", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return domain.Session{}, err
	}
	return payload.Session.toDomain(), nil
}

// UpdateSession applies a partial session update.
func (c *Client) UpdateSession(ctx context.Context, in SessionUpdateInput) (domain.Session, error) {
	body := struct {
		Title       *string `json:"title,omitempty"`
		StartsAt    *int64  `json:"starts_at,omitempty"`
		DurationMin *int    `json:"duration_minutes,omitempty"`
		MaxPlayers  *int    `json:"max_players,omitempty"`
	}{
		Title:       in.Title,
		StartsAt:    in.StartsAt,
		DurationMin: in.DurationMin,
		MaxPlayers:  in.MaxPlayers,
	}

	var payload struct {
		Session sessionPayload `json:"session"`
	}
	path := fmt.Sprintf("/api/sessions/%d", in.SessionID)
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return domain.Session{}, err
	}
	return payload.Session.toDomain(), nil
}

// ChangeSessionStatus moves a session through its lifecycle.
func (c *Client) ChangeSessionStatus(ctx context.Context, sessionID int64, status domain.SessionStatus) (domain.Session, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: domain.SessionStatusLabel(status)}

	var payload struct {
		Session sessionPayload `json:"session"`
	}
	path := fmt.Sprintf("/api/sessions/%d/status", sessionID)
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return domain.Session{}, err
	}
	return payload.Session.toDomain(), nil
}

// DeleteSession removes a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID int64) error {
	path := fmt.Sprintf("/api/sessions/%d", sessionID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ListParticipants returns the participant rows of a session.
func (c *Client) ListParticipants(ctx context.Context, sessionID int64) ([]domain.Participant, error) {
	var payload struct {
		Participants []participantPayload `json:"participants"`
	}
	path := fmt.Sprintf("/api/sessions/%d/participants", sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	participants := make([]domain.Participant, 0, len(payload.Participants))
	for _, item := range payload.Participants {
		participants = append(participants, item.toDomain())
	}
	return participants, nil
}

// JoinSession adds the authenticated user to a session.
func (c *Client) JoinSession(ctx context.Context, sessionID int64, characterName string) (domain.Participant, error) {
	body := struct {
		CharacterName string `json:"character_name,omitempty"`
	}{CharacterName: characterName}

	var payload struct {
		Participant participantPayload `json:"participant"`
	}
	path := fmt.Sprintf("/api/sessions/%d/participants", sessionID)
	if err := c.do(ctx, http.MethodPost, path, body, &payload); err != nil {
		return domain.Participant{}, err
	}
	return payload.Participant.toDomain(), nil
}

// LeaveSession removes the authenticated user from a session.
func (c *Client) LeaveSession(ctx context.Context, sessionID int64) error {
	path := fmt.Sprintf("/api/sessions/%d/leave", sessionID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// UpdateParticipantStatus sets a participant's attendance status.
func (c *Client) UpdateParticipantStatus(ctx context.Context, sessionID, participantID int64, status domain.ParticipantStatus) (domain.Participant, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: domain.ParticipantStatusLabel(status)}

	var payload struct {
		Participant participantPayload `json:"participant"`
	}
	path := fmt.Sprintf("/api/sessions/%d/participants/%d", sessionID, participantID)
	if err := c.do(ctx, http.MethodPatch, path, body, &payload); err != nil {
		return domain.Participant{}, err
	}
	return payload.Participant.toDomain(), nil
}

// RemoveParticipant removes another user's participant row.
func (c *Client) RemoveParticipant(ctx context.Context, sessionID, participantID int64) error {
	path := fmt.Sprintf("/api/sessions/%d/participants/%d", sessionID, participantID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

var (
	_ CampaignAPI = (*Client)(nil)
	_ SessionAPI  = (*Client)(nil)
)
