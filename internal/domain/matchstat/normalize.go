package matchstat

import (
	"math"
	"strconv"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

// RawRow is one player's statistics as delivered by the provider:
// loosely typed values under provider field names, plus the side the
// player lined up for.
type RawRow struct {
	GameID   int64
	PlayerID int64
	Position string
	Side     game.Side
	Stats    map[string]any
}

// CardCount is an authoritative card tally derived from match
// commentary, which is more reliable than the box-score fields.
type CardCount struct {
	Yellow float64
	Red    float64
}

// Overrides carry corrections applied during normalization.
type Overrides struct {
	PositionByPlayer map[int64]player.Position
	CardsByPlayer    map[int64]CardCount
}

// Normalize converts one raw provider row into a MatchStat. It is a
// pure, total transform: missing, non-numeric, and NaN values become
// zero, the position falls back to Midfielder when unresolvable, and
// goals conceded come from the opposing side's score. The boolean
// reports whether the position code was recognized.
func Normalize(row RawRow, g game.Game, ov Overrides) (MatchStat, bool) {
	stat := func(key string) float64 { return numeric(row.Stats[key]) }

	pos, known := player.ParsePosition(row.Position)
	if override, ok := ov.PositionByPlayer[row.PlayerID]; ok {
		pos, known = override, true
	}

	ms := MatchStat{
		GameID:   row.GameID,
		PlayerID: row.PlayerID,
		Position: pos,

		MinutesPlayed: stat("minutesPlayed"),
		Rating:        stat("rating"),
		GoalsConceded: g.ConcededBy(row.Side),

		Goals:      stat("goals"),
		GoalAssist: stat("goalAssist"),
		OwnGoals:   stat("ownGoals"),

		YellowCards:  stat("yellowCards"),
		RedCards:     stat("redCards"),
		Fouls:        stat("fouls"),
		WasFouled:    stat("wasFouled"),
		TotalOffside: stat("totalOffside"),
		Dispossessed: stat("dispossessed"),

		PenaltyWon:      stat("penaltyWon"),
		PenaltyConceded: stat("penaltyConceded"),
		PenaltyMiss:     stat("penaltyMiss"),
		PenaltySave:     stat("penaltySave"),

		TotalPass:         stat("totalPass"),
		AccuratePass:      stat("accuratePass"),
		TotalLongBalls:    stat("totalLongBalls"),
		AccurateLongBalls: stat("accurateLongBalls"),
		KeyPass:           stat("keyPass"),

		DuelWon:      stat("duelWon"),
		DuelLost:     stat("duelLost"),
		WonContest:   stat("wonContest"),
		TotalContest: stat("totalContest"),

		TotalClearance:    stat("totalClearance"),
		OutfielderBlock:   stat("outfielderBlock"),
		InterceptionWon:   stat("interceptionWon"),
		WonTackle:         stat("wonTackle"),
		GoalLineClearance: stat("goalLineClearance"),

		Saves:               stat("saves"),
		SavedShotsInsideBox: stat("savedShotsFromInsideTheBox"),
		Punches:             stat("punches"),
		GoodHighClaim:       stat("goodHighClaim"),
		KeeperSweeper:       stat("accurateKeeperSweeper"),
		GoalsPrevented:      stat("goalsPrevented"),

		ShotOffTarget:    stat("shotOffTarget"),
		OnTargetAttempts: stat("onTargetScoringAttempt"),
		HitWoodwork:      stat("hitWoodwork"),
	}

	if cards, ok := ov.CardsByPlayer[row.PlayerID]; ok {
		ms.YellowCards = cards.Yellow
		ms.RedCards = cards.Red
	}

	return ms, known
}

func numeric(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
