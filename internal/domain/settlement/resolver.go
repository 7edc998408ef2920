package settlement

import (
	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
)

// CaptainMultiplier is applied to the captain's points while the
// captain is part of the counted eleven.
const CaptainMultiplier = 1.5

// PlayStatus is what settlement knows about one player's round: whether
// anything is known at all, whether the player's game finished, and the
// minutes logged in it.
type PlayStatus struct {
	Known    bool
	Finished bool
	Minutes  float64
}

// Input is one team's settlement snapshot for a round. All lookups are
// supplied by the caller so resolution stays a pure computation.
type Input struct {
	Lineup lineup.Lineup

	// StatusByPlayer is keyed by player id; absent players have no
	// recorded stat line for the round.
	StatusByPlayer map[int64]PlayStatus

	// ClubByPlayer and ClubFinished drive the fallback for players with
	// no stat line: a finished club game means the player did not dress.
	ClubByPlayer map[int64]int64
	ClubFinished map[int64]bool

	PointsByPlayer map[int64]float64
}

// ScoreRow is one settled lineup slot. IsActive marks the players whose
// points count toward the team's round total.
type ScoreRow struct {
	TeamID    string
	PlayerID  int64
	Round     int
	Points    float64
	IsActive  bool
	IsCaptain bool
}

// Resolve applies automatic bench substitutions and the captain
// multiplier to one team's round. It emits one row per lineup entry in
// declaration order, so equal input always produces identical output.
func Resolve(in Input) []ScoreRow {
	active := make(map[int64]bool, len(in.Lineup.Entries))
	for _, e := range in.Lineup.Starters() {
		active[e.PlayerID] = true
	}

	bench := in.Lineup.BenchByPosition()
	used := make(map[int64]bool)

	for _, starter := range in.Lineup.Starters() {
		status, ok := in.statusOf(starter.PlayerID)
		if !ok {
			// Neither the player's game nor the club's is knowable yet;
			// leave the starter in rather than benching someone whose
			// game simply has not started.
			continue
		}
		if !status.Finished || status.Minutes > 0 {
			continue
		}

		for _, candidate := range bench[starter.Position] {
			if used[candidate.PlayerID] {
				continue
			}
			used[candidate.PlayerID] = true
			delete(active, starter.PlayerID)
			active[candidate.PlayerID] = true
			break
		}
		// No candidate: the starter stays counted despite not playing.
	}

	rows := make([]ScoreRow, 0, len(in.Lineup.Entries))
	for _, e := range in.Lineup.Entries {
		pts := in.PointsByPlayer[e.PlayerID]
		isActive := active[e.PlayerID]
		if e.IsCaptain && isActive {
			pts *= CaptainMultiplier
		}
		rows = append(rows, ScoreRow{
			TeamID:    in.Lineup.TeamID,
			PlayerID:  e.PlayerID,
			Round:     in.Lineup.Round,
			Points:    pts,
			IsActive:  isActive,
			IsCaptain: e.IsCaptain,
		})
	}
	return rows
}

// statusOf resolves a starter's play status, falling back to the club's
// game when the player has no stat line. A finished club game with no
// line means the player did not dress.
func (in Input) statusOf(playerID int64) (PlayStatus, bool) {
	if status, ok := in.StatusByPlayer[playerID]; ok && status.Known {
		return status, true
	}
	clubID, ok := in.ClubByPlayer[playerID]
	if !ok {
		return PlayStatus{}, false
	}
	if !in.ClubFinished[clubID] {
		return PlayStatus{}, false
	}
	return PlayStatus{Known: true, Finished: true, Minutes: 0}, true
}

// TeamTotal sums the active rows of one team's settled round.
func TeamTotal(rows []ScoreRow) float64 {
	total := 0.0
	for _, r := range rows {
		if r.IsActive {
			total += r.Points
		}
	}
	return total
}
