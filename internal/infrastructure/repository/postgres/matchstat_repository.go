package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type MatchStatRepository struct {
	db *sqlx.DB
}

func NewMatchStatRepository(db *sqlx.DB) *MatchStatRepository {
	return &MatchStatRepository{db: db}
}

func (r *MatchStatRepository) ListByGame(ctx context.Context, gameID int64) ([]matchstat.MatchStat, error) {
	query, args, err := qb.Select("*").From("match_stats").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats by game query: %w", err)
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats by game: %w", err)
	}

	return matchStatsFromRows(rows), nil
}

func (r *MatchStatRepository) ListByRound(ctx context.Context, round int) ([]matchstat.MatchStat, error) {
	query, args, err := qb.Select("ms.*").
		From("match_stats AS ms JOIN games AS g ON g.id = ms.game_id").
		Where(
			qb.Expr("g.round = ?", round),
			qb.IsNull("ms.deleted_at"),
			qb.IsNull("g.deleted_at"),
		).
		OrderBy("ms.game_id", "ms.player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats by round query: %w", err)
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats by round: %w", err)
	}

	return matchStatsFromRows(rows), nil
}

func (r *MatchStatRepository) GetByGameAndPlayer(ctx context.Context, gameID, playerID int64) (matchstat.MatchStat, bool, error) {
	query, args, err := qb.Select("*").From("match_stats").
		Where(
			qb.Eq("game_id", gameID),
			qb.Eq("player_id", playerID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return matchstat.MatchStat{}, false, fmt.Errorf("build get match stat query: %w", err)
	}

	var row matchStatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchstat.MatchStat{}, false, nil
		}
		return matchstat.MatchStat{}, false, fmt.Errorf("get match stat: %w", err)
	}

	return matchStatFromRow(row), true, nil
}

func (r *MatchStatRepository) ReplaceByGame(ctx context.Context, gameID int64, stats []matchstat.MatchStat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace match stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("match_stats").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("game_id", gameID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear match stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear match stats: %w", err)
	}

	for _, ms := range stats {
		query, args, err := qb.InsertModel("match_stats", matchStatToInsertModel(ms), `ON CONFLICT (game_id, player_id)
DO UPDATE SET position = EXCLUDED.position, minutes_played = EXCLUDED.minutes_played, rating = EXCLUDED.rating,
goals_conceded = EXCLUDED.goals_conceded, goals = EXCLUDED.goals, goal_assist = EXCLUDED.goal_assist,
own_goals = EXCLUDED.own_goals, yellow_cards = EXCLUDED.yellow_cards, red_cards = EXCLUDED.red_cards,
fouls = EXCLUDED.fouls, was_fouled = EXCLUDED.was_fouled, total_offside = EXCLUDED.total_offside,
dispossessed = EXCLUDED.dispossessed, penalty_won = EXCLUDED.penalty_won, penalty_conceded = EXCLUDED.penalty_conceded,
penalty_miss = EXCLUDED.penalty_miss, penalty_save = EXCLUDED.penalty_save, total_pass = EXCLUDED.total_pass,
accurate_pass = EXCLUDED.accurate_pass, total_long_balls = EXCLUDED.total_long_balls,
accurate_long_balls = EXCLUDED.accurate_long_balls, key_pass = EXCLUDED.key_pass, duel_won = EXCLUDED.duel_won,
duel_lost = EXCLUDED.duel_lost, won_contest = EXCLUDED.won_contest, total_contest = EXCLUDED.total_contest,
total_clearance = EXCLUDED.total_clearance, outfielder_block = EXCLUDED.outfielder_block,
interception_won = EXCLUDED.interception_won, won_tackle = EXCLUDED.won_tackle,
goal_line_clearance = EXCLUDED.goal_line_clearance, saves = EXCLUDED.saves,
saved_shots_inside_box = EXCLUDED.saved_shots_inside_box, punches = EXCLUDED.punches,
good_high_claim = EXCLUDED.good_high_claim, keeper_sweeper = EXCLUDED.keeper_sweeper,
goals_prevented = EXCLUDED.goals_prevented, shot_off_target = EXCLUDED.shot_off_target,
on_target_attempts = EXCLUDED.on_target_attempts, hit_woodwork = EXCLUDED.hit_woodwork,
updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build insert match stat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert match stat game=%d player=%d: %w", ms.GameID, ms.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace match stats: %w", err)
	}
	return nil
}

func matchStatsFromRows(rows []matchStatTableModel) []matchstat.MatchStat {
	out := make([]matchstat.MatchStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchStatFromRow(row))
	}
	return out
}
