package schedule

import (
	"context"
	"sort"
	"time"
)

// Round holds one fantasy round's transaction windows and real-world
// kickoff bounds. Read-only input to the market clock; windows are
// expected not to overlap by construction.
type Round struct {
	Number             int
	AuctionOpensAt     time.Time
	AuctionClosesAt    time.Time
	FreeAgencyOpensAt  time.Time
	FreeAgencyClosesAt time.Time
	LineupLockAt       time.Time
	FirstKickoffAt     time.Time
	LastKickoffAt      time.Time
}

// Sort orders rounds by number ascending, in place.
func Sort(rounds []Round) {
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].Number < rounds[j].Number })
}

// Repository exposes schedule reads.
type Repository interface {
	ListAll(ctx context.Context) ([]Round, error)
	GetByNumber(ctx context.Context, number int) (Round, bool, error)
	UpsertMany(ctx context.Context, rounds []Round) error
}
