package settlement

import "context"

// Repository persists settled score rows. Settlement is recomputed,
// never appended, so writes replace a team's round wholesale.
type Repository interface {
	ListByRound(ctx context.Context, round int) ([]ScoreRow, error)
	ListAll(ctx context.Context) ([]ScoreRow, error)
	ReplaceByTeamAndRound(ctx context.Context, teamID string, round int, rows []ScoreRow) error
}
