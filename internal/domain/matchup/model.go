package matchup

import "context"

// Matchup is one fixed head-to-head pairing of fantasy teams for a
// round. Pairings are defined externally and never change mid-season.
type Matchup struct {
	Round      int
	HomeTeamID string
	AwayTeamID string
}

// Repository exposes matchup reads.
type Repository interface {
	ListAll(ctx context.Context) ([]Matchup, error)
	ListByRound(ctx context.Context, round int) ([]Matchup, error)
	UpsertMany(ctx context.Context, matchups []Matchup) error
}
