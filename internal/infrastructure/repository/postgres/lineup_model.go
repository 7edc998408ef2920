package postgres

import (
	"fmt"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

type lineupEntryTableModel struct {
	TeamID    string     `db:"team_id"`
	Round     int        `db:"round"`
	Ord       int        `db:"ord"`
	PlayerID  int64      `db:"player_id"`
	Role      string     `db:"role"`
	Position  string     `db:"position"`
	IsCaptain bool       `db:"is_captain"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type lineupEntryInsertModel struct {
	TeamID    string    `db:"team_id"`
	Round     int       `db:"round"`
	Ord       int       `db:"ord"`
	PlayerID  int64     `db:"player_id"`
	Role      string    `db:"role"`
	Position  string    `db:"position"`
	IsCaptain bool      `db:"is_captain"`
	UpdatedAt time.Time `db:"updated_at"`
}

// lineupFromEntryRows rebuilds one lineup from its ordered entry rows.
// Rows must share team and round.
func lineupFromEntryRows(rows []lineupEntryTableModel) (lineup.Lineup, error) {
	if len(rows) == 0 {
		return lineup.Lineup{}, nil
	}

	l := lineup.Lineup{
		TeamID:    rows[0].TeamID,
		Round:     rows[0].Round,
		Entries:   make([]lineup.Entry, 0, len(rows)),
		UpdatedAt: rows[0].UpdatedAt,
	}
	for _, row := range rows {
		role, err := lineup.ParseRole(row.Role)
		if err != nil {
			return lineup.Lineup{}, fmt.Errorf("stored role %q: team=%s round=%d player=%d: %w", row.Role, row.TeamID, row.Round, row.PlayerID, err)
		}
		pos, _ := player.ParsePosition(row.Position)
		l.Entries = append(l.Entries, lineup.Entry{
			TeamID:    row.TeamID,
			Round:     row.Round,
			PlayerID:  row.PlayerID,
			Role:      role,
			Position:  pos,
			IsCaptain: row.IsCaptain,
		})
		if row.UpdatedAt.After(l.UpdatedAt) {
			l.UpdatedAt = row.UpdatedAt
		}
	}
	return l, nil
}
