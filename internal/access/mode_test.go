package access

import (
	"testing"

	"github.com/partykeep/partykeep/internal/domain"
)

func TestResolveAccessMode_LoadingWinsOverMembership(t *testing.T) {
	if got := ResolveAccessMode(true, true); got != ModeLoading {
		t.Fatalf("mode = %s, want LOADING", ModeLabel(got))
	}
	if got := ResolveAccessMode(false, true); got != ModeLoading {
		t.Fatalf("mode = %s, want LOADING", ModeLabel(got))
	}
}

func TestResolveAccessMode_AfterLoad(t *testing.T) {
	if got := ResolveAccessMode(true, false); got != ModeFull {
		t.Fatalf("member mode = %s, want FULL", ModeLabel(got))
	}
	if got := ResolveAccessMode(false, false); got != ModePreview {
		t.Fatalf("non-member mode = %s, want PREVIEW", ModeLabel(got))
	}
}

func TestIsCampaignMember(t *testing.T) {
	campaign := domain.Campaign{ID: 1, OwnerID: 10}
	members := []domain.Member{{ID: 1, CampaignID: 1, UserID: 11, Role: domain.RolePlayer}}

	if !IsCampaignMember(campaign, nil, 10) {
		t.Fatalf("owner without member row should be a member")
	}
	if !IsCampaignMember(campaign, members, 11) {
		t.Fatalf("member row should count")
	}
	if IsCampaignMember(campaign, members, 12) {
		t.Fatalf("outsider should not be a member")
	}
	if IsCampaignMember(campaign, members, 0) {
		t.Fatalf("anonymous should not be a member")
	}
}
