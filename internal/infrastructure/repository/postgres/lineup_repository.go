package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByTeamAndRound(ctx context.Context, teamID string, round int) (lineup.Lineup, bool, error) {
	query, args, err := qb.Select("*").From("lineup_entries").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		OrderBy("ord").
		ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var rows []lineupEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}
	if len(rows) == 0 {
		return lineup.Lineup{}, false, nil
	}

	l, err := lineupFromEntryRows(rows)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return l, true, nil
}

func (r *LineupRepository) ListByRound(ctx context.Context, round int) ([]lineup.Lineup, error) {
	query, args, err := qb.Select("*").From("lineup_entries").
		Where(
			qb.Eq("round", round),
			qb.IsNull("deleted_at"),
		).
		OrderBy("team_id", "ord").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineups by round query: %w", err)
	}

	var rows []lineupEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineups by round: %w", err)
	}

	var out []lineup.Lineup
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i].TeamID == rows[start].TeamID {
			continue
		}
		l, err := lineupFromEntryRows(rows[start:i])
		if err != nil {
			return nil, err
		}
		out = append(out, l)
		start = i
	}
	return out, nil
}

func (r *LineupRepository) Replace(ctx context.Context, l lineup.Lineup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace lineup: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("lineup_entries").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("team_id", l.TeamID),
			qb.Eq("round", l.Round),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear lineup query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear lineup: %w", err)
	}

	for i, entry := range l.Entries {
		insertModel := lineupEntryInsertModel{
			TeamID:    l.TeamID,
			Round:     l.Round,
			Ord:       i,
			PlayerID:  entry.PlayerID,
			Role:      entry.Role.String(),
			Position:  string(entry.Position),
			IsCaptain: entry.IsCaptain,
			UpdatedAt: l.UpdatedAt,
		}
		query, args, err := qb.InsertModel("lineup_entries", insertModel, `ON CONFLICT (team_id, round, player_id)
DO UPDATE SET ord = EXCLUDED.ord, role = EXCLUDED.role, position = EXCLUDED.position,
is_captain = EXCLUDED.is_captain, updated_at = EXCLUDED.updated_at, deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build insert lineup entry query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert lineup entry team=%s round=%d player=%d: %w", l.TeamID, l.Round, entry.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace lineup: %w", err)
	}
	return nil
}
