package points

import "context"

// Record is the derived fantasy point value for one player in one
// game. Recomputable at any time; re-extraction replaces the game's
// records rather than merging.
type Record struct {
	GameID   int64
	PlayerID int64
	Points   float64
}

// Repository persists point records.
type Repository interface {
	ListByRound(ctx context.Context, round int) ([]Record, error)
	ListByGame(ctx context.Context, gameID int64) ([]Record, error)
	ReplaceByGame(ctx context.Context, gameID int64, records []Record) error
}
