package market

import (
	"errors"
	"testing"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
)

func testRounds(base time.Time) []schedule.Round {
	return []schedule.Round{
		{
			Number:             1,
			AuctionOpensAt:     base.Add(-72 * time.Hour),
			AuctionClosesAt:    base.Add(-24 * time.Hour),
			FreeAgencyOpensAt:  base.Add(-24 * time.Hour),
			FreeAgencyClosesAt: base.Add(-2 * time.Hour),
			LineupLockAt:       base.Add(-2 * time.Hour),
			FirstKickoffAt:     base,
		},
		{
			Number:             2,
			AuctionOpensAt:     base.Add(96 * time.Hour),
			AuctionClosesAt:    base.Add(144 * time.Hour),
			FreeAgencyOpensAt:  base.Add(144 * time.Hour),
			FreeAgencyClosesAt: base.Add(166 * time.Hour),
			LineupLockAt:       base.Add(166 * time.Hour),
			FirstKickoffAt:     base.Add(168 * time.Hour),
		},
	}
}

func TestResolveAutoSelectsNextOpenRound(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 10, 16, 0, 0, 0, time.UTC)
	rounds := testRounds(base)

	// Round 1 already locked; round 2's auction not yet open.
	snap, err := Resolve(base.Add(-1*time.Hour), rounds, 0)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if snap.Round != 2 || snap.State != StateLocked {
		t.Fatalf("got %+v, want locked round 2", snap)
	}

	// Inside round 2's auction window.
	snap, err = Resolve(base.Add(100*time.Hour), rounds, 0)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if snap.State != StateAuctionOpen {
		t.Fatalf("got %+v, want auction open", snap)
	}
	if !snap.ClosesAt.After(base.Add(100 * time.Hour)) {
		t.Fatalf("open window must close in the future: %+v", snap)
	}
	if snap.Deadline == "" {
		t.Fatalf("deadline string must be set")
	}

	// Inside round 2's free agency window.
	snap, _ = Resolve(base.Add(150*time.Hour), rounds, 0)
	if snap.State != StateFreeAgencyOpen {
		t.Fatalf("got %+v, want free agency open", snap)
	}
}

func TestResolveSeasonFinished(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 10, 16, 0, 0, 0, time.UTC)
	snap, err := Resolve(base.Add(1000*time.Hour), testRounds(base), 0)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if snap.State != StateSeasonFinished {
		t.Fatalf("got %+v, want season finished", snap)
	}
}

func TestResolveExplicitRound(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 10, 16, 0, 0, 0, time.UTC)
	rounds := testRounds(base)

	// An already-locked round can still be inspected explicitly.
	snap, err := Resolve(base, rounds, 1)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if snap.Round != 1 || snap.State != StateLocked {
		t.Fatalf("got %+v, want locked round 1", snap)
	}

	if _, err := Resolve(base, rounds, 99); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("expected ErrRoundNotFound, got %v", err)
	}
}

func TestResolveAuctionPrecedesFreeAgencyOnOverlap(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 5, 10, 16, 0, 0, 0, time.UTC)
	rounds := []schedule.Round{{
		Number:             1,
		AuctionOpensAt:     base,
		AuctionClosesAt:    base.Add(48 * time.Hour),
		FreeAgencyOpensAt:  base, // misconfigured overlap
		FreeAgencyClosesAt: base.Add(48 * time.Hour),
		LineupLockAt:       base.Add(48 * time.Hour),
		FirstKickoffAt:     base.Add(50 * time.Hour),
	}}

	snap, err := Resolve(base.Add(time.Hour), rounds, 0)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if snap.State != StateAuctionOpen {
		t.Fatalf("auction must win the overlap, got %+v", snap)
	}
}
