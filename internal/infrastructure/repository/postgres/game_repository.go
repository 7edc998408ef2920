package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context) ([]game.Game, error) {
	query, args, err := gameBaseSelectBuilder().
		Where(qb.IsNull("deleted_at")).
		OrderBy("round", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) ListByRound(ctx context.Context, round int) ([]game.Game, error) {
	query, args, err := gameBaseSelectBuilder().
		Where(
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		OrderBy("kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games by round query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list games by round: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	return gameFromRow(row), true, nil
}

func (r *GameRepository) UpsertMany(ctx context.Context, games []game.Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert games: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, g := range games {
		insertModel := gameInsertModel{
			ID:         g.ID,
			Round:      g.Round,
			HomeClub:   g.HomeClub,
			AwayClub:   g.AwayClub,
			HomeClubID: g.HomeClubID,
			AwayClubID: g.AwayClubID,
			KickoffAt:  g.KickoffAt,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
			Status:     game.NormalizeStatus(g.Status),
		}
		query, args, err := qb.InsertModel("games", insertModel, `ON CONFLICT (id)
DO UPDATE SET round = EXCLUDED.round, home_club = EXCLUDED.home_club, away_club = EXCLUDED.away_club,
home_club_id = EXCLUDED.home_club_id, away_club_id = EXCLUDED.away_club_id, kickoff_at = EXCLUDED.kickoff_at,
home_score = EXCLUDED.home_score, away_score = EXCLUDED.away_score, status = EXCLUDED.status,
updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert game query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game %d: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert games: %w", err)
	}
	return nil
}

func gameBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("games")
}

func gamesFromRows(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out
}
