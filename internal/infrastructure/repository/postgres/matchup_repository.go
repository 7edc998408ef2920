package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type matchupTableModel struct {
	Round      int        `db:"round"`
	HomeTeamID string     `db:"home_team_id"`
	AwayTeamID string     `db:"away_team_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchupInsertModel struct {
	Round      int    `db:"round"`
	HomeTeamID string `db:"home_team_id"`
	AwayTeamID string `db:"away_team_id"`
}

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

func (r *MatchupRepository) ListAll(ctx context.Context) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(qb.IsNull("deleted_at")).
		OrderBy("round", "home_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}

	return matchupsFromRows(rows), nil
}

func (r *MatchupRepository) ListByRound(ctx context.Context, round int) ([]matchup.Matchup, error) {
	query, args, err := qb.Select("*").From("matchups").
		Where(
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		OrderBy("home_team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matchups by round query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matchups by round: %w", err)
	}

	return matchupsFromRows(rows), nil
}

func (r *MatchupRepository) UpsertMany(ctx context.Context, matchups []matchup.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert matchups: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range matchups {
		insertModel := matchupInsertModel{
			Round:      m.Round,
			HomeTeamID: m.HomeTeamID,
			AwayTeamID: m.AwayTeamID,
		}
		query, args, err := qb.InsertModel("matchups", insertModel, `ON CONFLICT (round, home_team_id, away_team_id)
DO UPDATE SET updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert matchup round=%d home=%s: %w", m.Round, m.HomeTeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert matchups: %w", err)
	}
	return nil
}

func matchupsFromRows(rows []matchupTableModel) []matchup.Matchup {
	out := make([]matchup.Matchup, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchup.Matchup{
			Round:      row.Round,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
		})
	}
	return out
}
