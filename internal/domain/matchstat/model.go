package matchstat

import (
	"context"

	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

// MatchStat is one player's normalized statistics line for one game.
// Every counting field is numeric with a zero default; the struct is
// the only shape scoring ever sees, so downstream code never has to
// guard against missing provider keys.
type MatchStat struct {
	GameID   int64
	PlayerID int64
	Position player.Position

	MinutesPlayed float64
	Rating        float64
	GoalsConceded float64

	Goals      float64
	GoalAssist float64
	OwnGoals   float64

	YellowCards  float64
	RedCards     float64
	Fouls        float64
	WasFouled    float64
	TotalOffside float64
	Dispossessed float64

	PenaltyWon      float64
	PenaltyConceded float64
	PenaltyMiss     float64
	PenaltySave     float64

	TotalPass         float64
	AccuratePass      float64
	TotalLongBalls    float64
	AccurateLongBalls float64
	KeyPass           float64

	DuelWon      float64
	DuelLost     float64
	WonContest   float64
	TotalContest float64

	TotalClearance    float64
	OutfielderBlock   float64
	InterceptionWon   float64
	WonTackle         float64
	GoalLineClearance float64

	Saves               float64
	SavedShotsInsideBox float64
	Punches             float64
	GoodHighClaim       float64
	KeeperSweeper       float64
	GoalsPrevented      float64

	ShotOffTarget    float64
	OnTargetAttempts float64
	HitWoodwork      float64
}

// Repository persists normalized stat lines. Re-ingesting a game
// replaces its lines wholesale rather than merging.
type Repository interface {
	ListByGame(ctx context.Context, gameID int64) ([]MatchStat, error)
	ListByRound(ctx context.Context, round int) ([]MatchStat, error)
	GetByGameAndPlayer(ctx context.Context, gameID, playerID int64) (MatchStat, bool, error)
	ReplaceByGame(ctx context.Context, gameID int64, stats []MatchStat) error
}
