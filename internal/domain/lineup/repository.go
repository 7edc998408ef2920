package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByTeamAndRound(ctx context.Context, teamID string, round int) (Lineup, bool, error)
	ListByRound(ctx context.Context, round int) ([]Lineup, error)
	Replace(ctx context.Context, l Lineup) error
}
