package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type pointsTableModel struct {
	GameID    int64      `db:"game_id"`
	PlayerID  int64      `db:"player_id"`
	Points    float64    `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type pointsInsertModel struct {
	GameID   int64   `db:"game_id"`
	PlayerID int64   `db:"player_id"`
	Points   float64 `db:"points"`
}

type PointsRepository struct {
	db *sqlx.DB
}

func NewPointsRepository(db *sqlx.DB) *PointsRepository {
	return &PointsRepository{db: db}
}

func (r *PointsRepository) ListByRound(ctx context.Context, round int) ([]points.Record, error) {
	query, args, err := qb.Select("p.*").
		From("points AS p JOIN games AS g ON g.id = p.game_id").
		Where(
			qb.Expr("g.round = ?", round),
			qb.IsNull("p.deleted_at"),
			qb.IsNull("g.deleted_at"),
		).
		OrderBy("p.game_id", "p.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points by round query: %w", err)
	}

	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list points by round: %w", err)
	}

	return pointsFromRows(rows), nil
}

func (r *PointsRepository) ListByGame(ctx context.Context, gameID int64) ([]points.Record, error) {
	query, args, err := qb.Select("*").From("points").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list points by game query: %w", err)
	}

	var rows []pointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list points by game: %w", err)
	}

	return pointsFromRows(rows), nil
}

func (r *PointsRepository) ReplaceByGame(ctx context.Context, gameID int64, records []points.Record) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace points: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("points").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear points query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear points: %w", err)
	}

	for _, record := range records {
		insertModel := pointsInsertModel{
			GameID:   record.GameID,
			PlayerID: record.PlayerID,
			Points:   record.Points,
		}
		query, args, err := qb.InsertModel("points", insertModel, `ON CONFLICT (game_id, player_id)
DO UPDATE SET points = EXCLUDED.points, updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build insert point query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert point game=%d player=%d: %w", record.GameID, record.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace points: %w", err)
	}
	return nil
}

func pointsFromRows(rows []pointsTableModel) []points.Record {
	out := make([]points.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, points.Record{
			GameID:   row.GameID,
			PlayerID: row.PlayerID,
			Points:   row.Points,
		})
	}
	return out
}
