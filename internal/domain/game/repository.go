package game

import "context"

// Repository exposes game read and sync operations.
type Repository interface {
	List(ctx context.Context) ([]Game, error)
	ListByRound(ctx context.Context, round int) ([]Game, error)
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	UpsertMany(ctx context.Context, games []Game) error
}
