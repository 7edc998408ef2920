package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
	"github.com/kbrleague/fantasy-h2h/internal/infrastructure/repository/memory"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

func newLineupFixture(t *testing.T, startersCount int) *LineupService {
	t.Helper()

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	players := make([]player.Player, 0, 20)
	for i := int64(1); i <= 20; i++ {
		pos := player.PositionMidfielder
		if i == 1 {
			pos = player.PositionGoalkeeper
		}
		players = append(players, player.Player{ID: i, Name: "P", ClubID: 1, Position: pos})
	}

	return NewLineupService(
		memory.NewLineupRepository(),
		memory.NewPlayerRepository(players),
		memory.NewScheduleRepository([]schedule.Round{
			{Number: 1, LineupLockAt: now.Add(-time.Hour)},
			{Number: 2, LineupLockAt: now.Add(24 * time.Hour)},
		}),
		startersCount,
		logging.NewNop(),
	).WithClock(func() time.Time { return now })
}

func validInput(round int) SaveLineupInput {
	entries := []SaveLineupEntry{
		{PlayerID: 1, Role: "TITULAR", Position: "G", IsCaptain: true},
		{PlayerID: 2, Role: "TITULAR", Position: "D"},
		{PlayerID: 3, Role: "TITULAR", Position: "F"},
		{PlayerID: 4, Role: "PRI 1", Position: "D"},
		{PlayerID: 5, Role: "PRI 2", Position: "D"},
	}
	return SaveLineupInput{TeamID: "time-alpha", Round: round, Entries: entries}
}

func TestSaveLineupRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newLineupFixture(t, 3)
	ctx := context.Background()

	saved, err := svc.SaveLineup(ctx, validInput(2))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(saved.Starters()) != 3 {
		t.Fatalf("starters = %d, want 3", len(saved.Starters()))
	}

	got, err := svc.Get(ctx, "time-alpha", 2)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.Entries) != 5 || got.UpdatedAt.IsZero() {
		t.Fatalf("stored lineup wrong: %+v", got)
	}

	// Resubmission overwrites rather than appends.
	resub := validInput(2)
	resub.Entries = resub.Entries[:4]
	resub.Entries[3] = SaveLineupEntry{PlayerID: 6, Role: "PRI 1", Position: "D"}
	if _, err := svc.SaveLineup(ctx, resub); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	got, _ = svc.Get(ctx, "time-alpha", 2)
	if len(got.Entries) != 4 {
		t.Fatalf("resubmission must overwrite: %d entries", len(got.Entries))
	}
}

func TestSaveLineupRejectsLockedRound(t *testing.T) {
	t.Parallel()

	svc := newLineupFixture(t, 3)
	_, err := svc.SaveLineup(context.Background(), validInput(1))
	if !errors.Is(err, ErrInvalidInput) || !strings.Contains(err.Error(), "locked") {
		t.Fatalf("expected locked error, got %v", err)
	}
}

func TestSaveLineupValidation(t *testing.T) {
	t.Parallel()

	svc := newLineupFixture(t, 3)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SaveLineupInput)
	}{
		{"missing team", func(in *SaveLineupInput) { in.TeamID = " " }},
		{"bad round", func(in *SaveLineupInput) { in.Round = 0 }},
		{"no entries", func(in *SaveLineupInput) { in.Entries = nil }},
		{"duplicate player", func(in *SaveLineupInput) { in.Entries[1].PlayerID = 1 }},
		{"bad role", func(in *SaveLineupInput) { in.Entries[0].Role = "RESERVA" }},
		{"bad position", func(in *SaveLineupInput) { in.Entries[0].Position = "Z" }},
		{"wrong starter count", func(in *SaveLineupInput) { in.Entries[2].Role = "PRI 3" }},
		{"two captains", func(in *SaveLineupInput) { in.Entries[1].IsCaptain = true }},
		{"duplicate bench priority", func(in *SaveLineupInput) { in.Entries[4].Role = "PRI 1" }},
		{"unknown player", func(in *SaveLineupInput) { in.Entries[3].PlayerID = 999 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := validInput(2)
			tc.mutate(&in)
			if _, err := svc.SaveLineup(ctx, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected invalid input, got %v", err)
			}
		})
	}
}

func TestGetLineupNotFound(t *testing.T) {
	t.Parallel()

	svc := newLineupFixture(t, 3)
	if _, err := svc.Get(context.Background(), "nobody", 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
