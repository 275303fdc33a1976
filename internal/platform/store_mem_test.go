package platform

import (
	"context"
	"testing"
	"time"

	"github.com/playaway/gge-go/internal/identity"
	"github.com/playaway/gge-go/internal/types"
)

func TestMemoryStore_UserLifecycle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	u := &types.User{
		Username:      "Sean",
		Email:         "sean@example.ie",
		Role:          identity.RoleUser,
		AccountStatus: identity.StatusPending,
	}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("CreateUser did not assign an id")
	}

	// usernames are unique case-insensitively
	if err := s.CreateUser(ctx, &types.User{Username: "sean"}); err != types.ErrUsernameTaken {
		t.Fatalf("duplicate username err = %v, want ErrUsernameTaken", err)
	}

	got, err := s.FindUserByUsername(ctx, "SEAN")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("FindUserByUsername = %+v, %v", got, err)
	}

	if _, err := s.SetAccountStatus(ctx, "missing", identity.StatusApproved, ""); err != types.ErrNotFound {
		t.Fatalf("SetAccountStatus on missing id err = %v, want ErrNotFound", err)
	}

	rejected, err := s.SetAccountStatus(ctx, u.ID, identity.StatusRejected, "Invalid documentation")
	if err != nil {
		t.Fatalf("SetAccountStatus: %v", err)
	}
	if rejected.AccountStatus != identity.StatusRejected || rejected.RejectionReason != "Invalid documentation" {
		t.Fatalf("rejection not recorded: %+v", rejected)
	}

	pending, err := s.ListUsersByStatus(ctx, identity.StatusPending)
	if err != nil {
		t.Fatalf("ListUsersByStatus: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("got %d pending users after rejection, want 0", len(pending))
	}
	all, err := s.ListUsersByStatus(ctx, "")
	if err != nil || len(all) != 1 {
		t.Fatalf("list all = %d users, %v; want 1", len(all), err)
	}
}

func TestMemoryStore_Directory(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()
	u := &types.User{Username: "niamh", AccountStatus: identity.StatusSuspended}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	d := &Directory{Users: s}
	rec, err := d.FindByUsername(ctx, "niamh")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if rec == nil || rec.AccountStatus != identity.StatusSuspended {
		t.Fatalf("record = %+v, want suspended", rec)
	}

	rec, err = d.FindByUsername(ctx, "nobody")
	if err != nil || rec != nil {
		t.Fatalf("unknown username must be nil, nil; got %+v, %v", rec, err)
	}
}

func TestMemoryStore_RegistrationsAndFinance(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	club := &types.Club{Name: "Amsterdam GAC", Country: "NL"}
	if err := s.CreateClub(ctx, club); err != nil {
		t.Fatalf("CreateClub: %v", err)
	}

	ev := &types.Event{
		HostClubID:    club.ID,
		Name:          "Benelux Sevens 2026",
		StartDate:     time.Date(2026, 6, 13, 9, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 6, 14, 18, 0, 0, 0, time.UTC),
		EntryFeeCents: 7500,
		MaxTeams:      16,
	}
	if err := s.CreateEvent(ctx, ev); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// batch pointing at an unknown event must insert nothing
	bad := []*types.TeamRegistration{
		{EventID: ev.ID, ClubID: club.ID, TeamName: "Firsts"},
		{EventID: "missing", ClubID: club.ID, TeamName: "Seconds"},
	}
	if err := s.CreateRegistrations(ctx, bad); err != types.ErrNotFound {
		t.Fatalf("mixed batch err = %v, want ErrNotFound", err)
	}
	if n, _ := s.CountRegistrations(ctx, ev.ID); n != 0 {
		t.Fatalf("mixed batch inserted %d rows, want 0", n)
	}

	good := []*types.TeamRegistration{
		{EventID: ev.ID, ClubID: club.ID, TeamName: "Firsts", AgeGrade: "senior", SquadSize: 12, FeeCents: 7500},
		{EventID: ev.ID, ClubID: club.ID, TeamName: "Seconds", AgeGrade: "senior", SquadSize: 11, FeeCents: 7500},
	}
	if err := s.CreateRegistrations(ctx, good); err != nil {
		t.Fatalf("CreateRegistrations: %v", err)
	}
	if n, _ := s.CountRegistrations(ctx, ev.ID); n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}

	sum, err := s.FinanceSummary(ctx, 2026)
	if err != nil {
		t.Fatalf("FinanceSummary: %v", err)
	}
	if sum.TotalTeams != 2 || sum.TotalGrossFeeCents != 15000 {
		t.Fatalf("summary = %+v, want 2 teams / 15000 cents", sum)
	}
	if len(sum.Events) != 1 || sum.Events[0].EventName != "Benelux Sevens 2026" {
		t.Fatalf("events = %+v", sum.Events)
	}

	if sum, err := s.FinanceSummary(ctx, 2025); err != nil || sum.TotalTeams != 0 {
		t.Fatalf("2025 summary = %+v, %v; want empty", sum, err)
	}
}
