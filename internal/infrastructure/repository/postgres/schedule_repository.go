package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
	qb "github.com/kbrleague/fantasy-h2h/internal/platform/querybuilder"
)

type scheduleRoundTableModel struct {
	Number             int        `db:"number"`
	AuctionOpensAt     time.Time  `db:"auction_opens_at"`
	AuctionClosesAt    time.Time  `db:"auction_closes_at"`
	FreeAgencyOpensAt  time.Time  `db:"free_agency_opens_at"`
	FreeAgencyClosesAt time.Time  `db:"free_agency_closes_at"`
	LineupLockAt       time.Time  `db:"lineup_lock_at"`
	FirstKickoffAt     time.Time  `db:"first_kickoff_at"`
	LastKickoffAt      time.Time  `db:"last_kickoff_at"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
	DeletedAt          *time.Time `db:"deleted_at"`
}

type scheduleRoundInsertModel struct {
	Number             int       `db:"number"`
	AuctionOpensAt     time.Time `db:"auction_opens_at"`
	AuctionClosesAt    time.Time `db:"auction_closes_at"`
	FreeAgencyOpensAt  time.Time `db:"free_agency_opens_at"`
	FreeAgencyClosesAt time.Time `db:"free_agency_closes_at"`
	LineupLockAt       time.Time `db:"lineup_lock_at"`
	FirstKickoffAt     time.Time `db:"first_kickoff_at"`
	LastKickoffAt      time.Time `db:"last_kickoff_at"`
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) ListAll(ctx context.Context) ([]schedule.Round, error) {
	query, args, err := qb.Select("*").From("schedule_rounds").
		Where(qb.IsNull("deleted_at")).
		OrderBy("number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list schedule rounds query: %w", err)
	}

	var rows []scheduleRoundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list schedule rounds: %w", err)
	}

	out := make([]schedule.Round, 0, len(rows))
	for _, row := range rows {
		out = append(out, scheduleRoundFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) GetByNumber(ctx context.Context, number int) (schedule.Round, bool, error) {
	query, args, err := qb.Select("*").From("schedule_rounds").
		Where(
			qb.Eq("number", number),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return schedule.Round{}, false, fmt.Errorf("build get schedule round query: %w", err)
	}

	var row scheduleRoundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Round{}, false, nil
		}
		return schedule.Round{}, false, fmt.Errorf("get schedule round: %w", err)
	}

	return scheduleRoundFromRow(row), true, nil
}

func (r *ScheduleRepository) UpsertMany(ctx context.Context, rounds []schedule.Round) error {
	if len(rounds) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert schedule rounds: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, round := range rounds {
		insertModel := scheduleRoundInsertModel{
			Number:             round.Number,
			AuctionOpensAt:     round.AuctionOpensAt,
			AuctionClosesAt:    round.AuctionClosesAt,
			FreeAgencyOpensAt:  round.FreeAgencyOpensAt,
			FreeAgencyClosesAt: round.FreeAgencyClosesAt,
			LineupLockAt:       round.LineupLockAt,
			FirstKickoffAt:     round.FirstKickoffAt,
			LastKickoffAt:      round.LastKickoffAt,
		}
		query, args, err := qb.InsertModel("schedule_rounds", insertModel, `ON CONFLICT (number)
DO UPDATE SET auction_opens_at = EXCLUDED.auction_opens_at, auction_closes_at = EXCLUDED.auction_closes_at,
free_agency_opens_at = EXCLUDED.free_agency_opens_at, free_agency_closes_at = EXCLUDED.free_agency_closes_at,
lineup_lock_at = EXCLUDED.lineup_lock_at, first_kickoff_at = EXCLUDED.first_kickoff_at,
last_kickoff_at = EXCLUDED.last_kickoff_at, updated_at = NOW(), deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert schedule round query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert schedule round %d: %w", round.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert schedule rounds: %w", err)
	}
	return nil
}

func scheduleRoundFromRow(row scheduleRoundTableModel) schedule.Round {
	return schedule.Round{
		Number:             row.Number,
		AuctionOpensAt:     row.AuctionOpensAt,
		AuctionClosesAt:    row.AuctionClosesAt,
		FreeAgencyOpensAt:  row.FreeAgencyOpensAt,
		FreeAgencyClosesAt: row.FreeAgencyClosesAt,
		LineupLockAt:       row.LineupLockAt,
		FirstKickoffAt:     row.FirstKickoffAt,
		LastKickoffAt:      row.LastKickoffAt,
	}
}
