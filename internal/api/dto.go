package api

import (
	"time"

	"github.com/partykeep/partykeep/internal/domain"
)

// Wire payloads use enum labels for statuses and unix-millis integers for
// timestamps, mirroring the platform's JSON API.

type campaignPayload struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Visibility string `json:"visibility"`
	OwnerID    int64  `json:"owner_id"`
	InviteCode string `json:"invite_code,omitempty"`
	CreatedAt  int64  `json:"created_at,omitempty"`
	UpdatedAt  int64  `json:"updated_at,omitempty"`
}

func (p campaignPayload) toDomain() domain.Campaign {
	return domain.Campaign{
		ID:         p.ID,
		Title:      p.Title,
		Visibility: domain.VisibilityFromLabel(p.Visibility),
		OwnerID:    p.OwnerID,
		InviteCode: p.InviteCode,
		CreatedAt:  millisToTime(p.CreatedAt),
		UpdatedAt:  millisToTime(p.UpdatedAt),
	}
}

type memberPayload struct {
	ID         int64  `json:"id"`
	CampaignID int64  `json:"campaign_id"`
	UserID     int64  `json:"user_id"`
	Role       string `json:"role"`
	JoinedAt   int64  `json:"joined_at,omitempty"`
}

func (p memberPayload) toDomain() domain.Member {
	return domain.Member{
		ID:         p.ID,
		CampaignID: p.CampaignID,
		UserID:     p.UserID,
		Role:       domain.RoleFromLabel(p.Role),
		JoinedAt:   millisToTime(p.JoinedAt),
	}
}

type joinRequestPayload struct {
	ID         int64  `json:"id"`
	CampaignID int64  `json:"campaign_id"`
	UserID     int64  `json:"user_id"`
	Message    string `json:"message,omitempty"`
	Status     string `json:"status"`
	CreatedAt  int64  `json:"created_at,omitempty"`
}

func (p joinRequestPayload) toDomain() domain.JoinRequest {
	return domain.JoinRequest{
		ID:         p.ID,
		CampaignID: p.CampaignID,
		UserID:     p.UserID,
		Message:    p.Message,
		Status:     domain.JoinRequestStatusFromLabel(p.Status),
		CreatedAt:  millisToTime(p.CreatedAt),
	}
}

type sessionPayload struct {
	ID          int64  `json:"id"`
	CampaignID  int64  `json:"campaign_id,omitempty"`
	CreatorID   int64  `json:"creator_id"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	StartsAt    int64  `json:"starts_at,omitempty"`
	DurationMin int    `json:"duration_minutes,omitempty"`
	MaxPlayers  int    `json:"max_players,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
	UpdatedAt   int64  `json:"updated_at,omitempty"`
}

func (p sessionPayload) toDomain() domain.Session {
	return domain.Session{
		ID:         p.ID,
		CampaignID: p.CampaignID,
		CreatorID:  p.CreatorID,
		Title:      p.Title,
		Status:     domain.SessionStatusFromLabel(p.Status),
		StartsAt:   millisToTime(p.StartsAt),
		Duration:   time.Duration(p.DurationMin) * time.Minute,
		MaxPlayers: p.MaxPlayers,
		CreatedAt:  millisToTime(p.CreatedAt),
		UpdatedAt:  millisToTime(p.UpdatedAt),
	}
}

type participantPayload struct {
	ID            int64  `json:"id"`
	SessionID     int64  `json:"session_id"`
	UserID        int64  `json:"user_id"`
	Role          string `json:"role"`
	Status        string `json:"status"`
	CharacterName string `json:"character_name,omitempty"`
	CreatedAt     int64  `json:"created_at,omitempty"`
}

func (p participantPayload) toDomain() domain.Participant {
	return domain.Participant{
		ID:            p.ID,
		SessionID:     p.SessionID,
		UserID:        p.UserID,
		Role:          domain.RoleFromLabel(p.Role),
		Status:        domain.ParticipantStatusFromLabel(p.Status),
		CharacterName: p.CharacterName,
		CreatedAt:     millisToTime(p.CreatedAt),
	}
}

func millisToTime(value int64) time.Time {
	if value <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(value).UTC()
}
