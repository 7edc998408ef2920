package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/standings"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type standingsRowTableModel struct {
	Position      int        `db:"position"`
	TeamID        string     `db:"team_id"`
	Points        int        `db:"points"`
	GamesPlayed   int        `db:"games_played"`
	Wins          int        `db:"wins"`
	Draws         int        `db:"draws"`
	Losses        int        `db:"losses"`
	PointsFor     float64    `db:"points_for"`
	PointsAgainst float64    `db:"points_against"`
	EfficiencyPct float64    `db:"efficiency_pct"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

type standingsRowInsertModel struct {
	Position      int     `db:"position"`
	TeamID        string  `db:"team_id"`
	Points        int     `db:"points"`
	GamesPlayed   int     `db:"games_played"`
	Wins          int     `db:"wins"`
	Draws         int     `db:"draws"`
	Losses        int     `db:"losses"`
	PointsFor     float64 `db:"points_for"`
	PointsAgainst float64 `db:"points_against"`
	EfficiencyPct float64 `db:"efficiency_pct"`
}

type StandingsRepository struct {
	db *sqlx.DB
}

func NewStandingsRepository(db *sqlx.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

func (r *StandingsRepository) List(ctx context.Context) ([]standings.Row, error) {
	query, args, err := qb.Select("*").From("standings").
		Where(qb.IsNull("deleted_at")).
		OrderBy("position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list standings query: %w", err)
	}

	var rows []standingsRowTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	out := make([]standings.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, standings.Row{
			TeamID:        row.TeamID,
			Points:        row.Points,
			GamesPlayed:   row.GamesPlayed,
			Wins:          row.Wins,
			Draws:         row.Draws,
			Losses:        row.Losses,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			EfficiencyPct: row.EfficiencyPct,
		})
	}
	return out, nil
}

func (r *StandingsRepository) Replace(ctx context.Context, rows []standings.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("standings").
		SetExpr("deleted_at", "NOW()").
		Where(qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear standings: %w", err)
	}

	for i, row := range rows {
		insertModel := standingsRowInsertModel{
			Position:      i + 1,
			TeamID:        row.TeamID,
			Points:        row.Points,
			GamesPlayed:   row.GamesPlayed,
			Wins:          row.Wins,
			Draws:         row.Draws,
			Losses:        row.Losses,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			EfficiencyPct: row.EfficiencyPct,
		}
		query, args, err := qb.InsertModel("standings", insertModel, `ON CONFLICT (team_id)
DO UPDATE SET position = EXCLUDED.position, points = EXCLUDED.points, games_played = EXCLUDED.games_played,
wins = EXCLUDED.wins, draws = EXCLUDED.draws, losses = EXCLUDED.losses, points_for = EXCLUDED.points_for,
points_against = EXCLUDED.points_against, efficiency_pct = EXCLUDED.efficiency_pct,
updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build insert standings row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert standings row team=%s: %w", row.TeamID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace standings: %w", err)
	}
	return nil
}
