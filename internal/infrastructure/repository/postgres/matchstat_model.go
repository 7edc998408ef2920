package postgres

import (
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

type matchStatTableModel struct {
	GameID   int64  `db:"game_id"`
	PlayerID int64  `db:"player_id"`
	Position string `db:"position"`

	MinutesPlayed float64 `db:"minutes_played"`
	Rating        float64 `db:"rating"`
	GoalsConceded float64 `db:"goals_conceded"`

	Goals      float64 `db:"goals"`
	GoalAssist float64 `db:"goal_assist"`
	OwnGoals   float64 `db:"own_goals"`

	YellowCards  float64 `db:"yellow_cards"`
	RedCards     float64 `db:"red_cards"`
	Fouls        float64 `db:"fouls"`
	WasFouled    float64 `db:"was_fouled"`
	TotalOffside float64 `db:"total_offside"`
	Dispossessed float64 `db:"dispossessed"`

	PenaltyWon      float64 `db:"penalty_won"`
	PenaltyConceded float64 `db:"penalty_conceded"`
	PenaltyMiss     float64 `db:"penalty_miss"`
	PenaltySave     float64 `db:"penalty_save"`

	TotalPass         float64 `db:"total_pass"`
	AccuratePass      float64 `db:"accurate_pass"`
	TotalLongBalls    float64 `db:"total_long_balls"`
	AccurateLongBalls float64 `db:"accurate_long_balls"`
	KeyPass           float64 `db:"key_pass"`

	DuelWon      float64 `db:"duel_won"`
	DuelLost     float64 `db:"duel_lost"`
	WonContest   float64 `db:"won_contest"`
	TotalContest float64 `db:"total_contest"`

	TotalClearance    float64 `db:"total_clearance"`
	OutfielderBlock   float64 `db:"outfielder_block"`
	InterceptionWon   float64 `db:"interception_won"`
	WonTackle         float64 `db:"won_tackle"`
	GoalLineClearance float64 `db:"goal_line_clearance"`

	Saves               float64 `db:"saves"`
	SavedShotsInsideBox float64 `db:"saved_shots_inside_box"`
	Punches             float64 `db:"punches"`
	GoodHighClaim       float64 `db:"good_high_claim"`
	KeeperSweeper       float64 `db:"keeper_sweeper"`
	GoalsPrevented      float64 `db:"goals_prevented"`

	ShotOffTarget    float64 `db:"shot_off_target"`
	OnTargetAttempts float64 `db:"on_target_attempts"`
	HitWoodwork      float64 `db:"hit_woodwork"`

	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func matchStatFromRow(row matchStatTableModel) matchstat.MatchStat {
	pos, _ := player.ParsePosition(row.Position)
	return matchstat.MatchStat{
		GameID:   row.GameID,
		PlayerID: row.PlayerID,
		Position: pos,

		MinutesPlayed: row.MinutesPlayed,
		Rating:        row.Rating,
		GoalsConceded: row.GoalsConceded,

		Goals:      row.Goals,
		GoalAssist: row.GoalAssist,
		OwnGoals:   row.OwnGoals,

		YellowCards:  row.YellowCards,
		RedCards:     row.RedCards,
		Fouls:        row.Fouls,
		WasFouled:    row.WasFouled,
		TotalOffside: row.TotalOffside,
		Dispossessed: row.Dispossessed,

		PenaltyWon:      row.PenaltyWon,
		PenaltyConceded: row.PenaltyConceded,
		PenaltyMiss:     row.PenaltyMiss,
		PenaltySave:     row.PenaltySave,

		TotalPass:         row.TotalPass,
		AccuratePass:      row.AccuratePass,
		TotalLongBalls:    row.TotalLongBalls,
		AccurateLongBalls: row.AccurateLongBalls,
		KeyPass:           row.KeyPass,

		DuelWon:      row.DuelWon,
		DuelLost:     row.DuelLost,
		WonContest:   row.WonContest,
		TotalContest: row.TotalContest,

		TotalClearance:    row.TotalClearance,
		OutfielderBlock:   row.OutfielderBlock,
		InterceptionWon:   row.InterceptionWon,
		WonTackle:         row.WonTackle,
		GoalLineClearance: row.GoalLineClearance,

		Saves:               row.Saves,
		SavedShotsInsideBox: row.SavedShotsInsideBox,
		Punches:             row.Punches,
		GoodHighClaim:       row.GoodHighClaim,
		KeeperSweeper:       row.KeeperSweeper,
		GoalsPrevented:      row.GoalsPrevented,

		ShotOffTarget:    row.ShotOffTarget,
		OnTargetAttempts: row.OnTargetAttempts,
		HitWoodwork:      row.HitWoodwork,
	}
}

type matchStatInsertModel struct {
	GameID   int64  `db:"game_id"`
	PlayerID int64  `db:"player_id"`
	Position string `db:"position"`

	MinutesPlayed float64 `db:"minutes_played"`
	Rating        float64 `db:"rating"`
	GoalsConceded float64 `db:"goals_conceded"`

	Goals      float64 `db:"goals"`
	GoalAssist float64 `db:"goal_assist"`
	OwnGoals   float64 `db:"own_goals"`

	YellowCards  float64 `db:"yellow_cards"`
	RedCards     float64 `db:"red_cards"`
	Fouls        float64 `db:"fouls"`
	WasFouled    float64 `db:"was_fouled"`
	TotalOffside float64 `db:"total_offside"`
	Dispossessed float64 `db:"dispossessed"`

	PenaltyWon      float64 `db:"penalty_won"`
	PenaltyConceded float64 `db:"penalty_conceded"`
	PenaltyMiss     float64 `db:"penalty_miss"`
	PenaltySave     float64 `db:"penalty_save"`

	TotalPass         float64 `db:"total_pass"`
	AccuratePass      float64 `db:"accurate_pass"`
	TotalLongBalls    float64 `db:"total_long_balls"`
	AccurateLongBalls float64 `db:"accurate_long_balls"`
	KeyPass           float64 `db:"key_pass"`

	DuelWon      float64 `db:"duel_won"`
	DuelLost     float64 `db:"duel_lost"`
	WonContest   float64 `db:"won_contest"`
	TotalContest float64 `db:"total_contest"`

	TotalClearance    float64 `db:"total_clearance"`
	OutfielderBlock   float64 `db:"outfielder_block"`
	InterceptionWon   float64 `db:"interception_won"`
	WonTackle         float64 `db:"won_tackle"`
	GoalLineClearance float64 `db:"goal_line_clearance"`

	Saves               float64 `db:"saves"`
	SavedShotsInsideBox float64 `db:"saved_shots_inside_box"`
	Punches             float64 `db:"punches"`
	GoodHighClaim       float64 `db:"good_high_claim"`
	KeeperSweeper       float64 `db:"keeper_sweeper"`
	GoalsPrevented      float64 `db:"goals_prevented"`

	ShotOffTarget    float64 `db:"shot_off_target"`
	OnTargetAttempts float64 `db:"on_target_attempts"`
	HitWoodwork      float64 `db:"hit_woodwork"`
}

func matchStatToInsertModel(ms matchstat.MatchStat) matchStatInsertModel {
	return matchStatInsertModel{
		GameID:   ms.GameID,
		PlayerID: ms.PlayerID,
		Position: string(ms.Position),

		MinutesPlayed: ms.MinutesPlayed,
		Rating:        ms.Rating,
		GoalsConceded: ms.GoalsConceded,

		Goals:      ms.Goals,
		GoalAssist: ms.GoalAssist,
		OwnGoals:   ms.OwnGoals,

		YellowCards:  ms.YellowCards,
		RedCards:     ms.RedCards,
		Fouls:        ms.Fouls,
		WasFouled:    ms.WasFouled,
		TotalOffside: ms.TotalOffside,
		Dispossessed: ms.Dispossessed,

		PenaltyWon:      ms.PenaltyWon,
		PenaltyConceded: ms.PenaltyConceded,
		PenaltyMiss:     ms.PenaltyMiss,
		PenaltySave:     ms.PenaltySave,

		TotalPass:         ms.TotalPass,
		AccuratePass:      ms.AccuratePass,
		TotalLongBalls:    ms.TotalLongBalls,
		AccurateLongBalls: ms.AccurateLongBalls,
		KeyPass:           ms.KeyPass,

		DuelWon:      ms.DuelWon,
		DuelLost:     ms.DuelLost,
		WonContest:   ms.WonContest,
		TotalContest: ms.TotalContest,

		TotalClearance:    ms.TotalClearance,
		OutfielderBlock:   ms.OutfielderBlock,
		InterceptionWon:   ms.InterceptionWon,
		WonTackle:         ms.WonTackle,
		GoalLineClearance: ms.GoalLineClearance,

		Saves:               ms.Saves,
		SavedShotsInsideBox: ms.SavedShotsInsideBox,
		Punches:             ms.Punches,
		GoodHighClaim:       ms.GoodHighClaim,
		KeeperSweeper:       ms.KeeperSweeper,
		GoalsPrevented:      ms.GoalsPrevented,

		ShotOffTarget:    ms.ShotOffTarget,
		OnTargetAttempts: ms.OnTargetAttempts,
		HitWoodwork:      ms.HitWoodwork,
	}
}
