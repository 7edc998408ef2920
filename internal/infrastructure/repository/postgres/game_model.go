package postgres

import (
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
)

type gameTableModel struct {
	ID         int64      `db:"id"`
	Round      int        `db:"round"`
	HomeClub   string     `db:"home_club"`
	AwayClub   string     `db:"away_club"`
	HomeClubID int64      `db:"home_club_id"`
	AwayClubID int64      `db:"away_club_id"`
	KickoffAt  time.Time  `db:"kickoff_at"`
	HomeScore  *int       `db:"home_score"`
	AwayScore  *int       `db:"away_score"`
	Status     string     `db:"status"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type gameInsertModel struct {
	ID         int64     `db:"id"`
	Round      int       `db:"round"`
	HomeClub   string    `db:"home_club"`
	AwayClub   string    `db:"away_club"`
	HomeClubID int64     `db:"home_club_id"`
	AwayClubID int64     `db:"away_club_id"`
	KickoffAt  time.Time `db:"kickoff_at"`
	HomeScore  *int      `db:"home_score"`
	AwayScore  *int      `db:"away_score"`
	Status     string    `db:"status"`
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:         row.ID,
		Round:      row.Round,
		HomeClub:   row.HomeClub,
		AwayClub:   row.AwayClub,
		HomeClubID: row.HomeClubID,
		AwayClubID: row.AwayClubID,
		KickoffAt:  row.KickoffAt,
		HomeScore:  row.HomeScore,
		AwayScore:  row.AwayScore,
		Status:     game.NormalizeStatus(row.Status),
	}
}
