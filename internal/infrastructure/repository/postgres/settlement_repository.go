package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type settledScoreTableModel struct {
	TeamID    string     `db:"team_id"`
	Round     int        `db:"round"`
	Ord       int        `db:"ord"`
	PlayerID  int64      `db:"player_id"`
	Points    float64    `db:"points"`
	IsActive  bool       `db:"is_active"`
	IsCaptain bool       `db:"is_captain"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type settledScoreInsertModel struct {
	TeamID    string  `db:"team_id"`
	Round     int     `db:"round"`
	Ord       int     `db:"ord"`
	PlayerID  int64   `db:"player_id"`
	Points    float64 `db:"points"`
	IsActive  bool    `db:"is_active"`
	IsCaptain bool    `db:"is_captain"`
}

type SettlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) *SettlementRepository {
	return &SettlementRepository{db: db}
}

func (r *SettlementRepository) ListByRound(ctx context.Context, round int) ([]settlement.ScoreRow, error) {
	query, args, err := qb.Select("*").From("settled_scores").
		Where(
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_id", "ord").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list settled scores by round query: %w", err)
	}

	var rows []settledScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list settled scores by round: %w", err)
	}

	return scoreRowsFromRows(rows), nil
}

func (r *SettlementRepository) ListAll(ctx context.Context) ([]settlement.ScoreRow, error) {
	query, args, err := qb.Select("*").From("settled_scores").
		Where(qb.IsNull("deleted_at")).
		OrderBy("round", "team_id", "ord").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list settled scores query: %w", err)
	}

	var rows []settledScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list settled scores: %w", err)
	}

	return scoreRowsFromRows(rows), nil
}

func (r *SettlementRepository) ReplaceByTeamAndRound(ctx context.Context, teamID string, round int, rows []settlement.ScoreRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace settled scores: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("settled_scores").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear settled scores query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear settled scores: %w", err)
	}

	for i, row := range rows {
		insertModel := settledScoreInsertModel{
			TeamID:    row.TeamID,
			Round:     row.Round,
			Ord:       i,
			PlayerID:  row.PlayerID,
			Points:    row.Points,
			IsActive:  row.IsActive,
			IsCaptain: row.IsCaptain,
		}
		query, args, err := qb.InsertModel("settled_scores", insertModel, `ON CONFLICT (team_id, round, player_id)
DO UPDATE SET ord = EXCLUDED.ord, points = EXCLUDED.points, is_active = EXCLUDED.is_active,
is_captain = EXCLUDED.is_captain, updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build insert settled score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert settled score team=%s round=%d player=%d: %w", row.TeamID, row.Round, row.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace settled scores: %w", err)
	}
	return nil
}

func scoreRowsFromRows(rows []settledScoreTableModel) []settlement.ScoreRow {
	out := make([]settlement.ScoreRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, settlement.ScoreRow{
			TeamID:    row.TeamID,
			PlayerID:  row.PlayerID,
			Round:     row.Round,
			Points:    row.Points,
			IsActive:  row.IsActive,
			IsCaptain: row.IsCaptain,
		})
	}
	return out
}
