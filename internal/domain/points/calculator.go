package points

import (
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

// Calculate maps one normalized stat line to its fantasy point value.
// The function is total and deterministic: the same line always yields
// the same value, which is what makes re-settlement idempotent.
func Calculate(ms matchstat.MatchStat) float64 {
	total := ratingTier(ms.Rating)
	total += negatives(ms)
	total += redCard(ms)
	total += participation(ms)
	total += performanceBonuses(ms)
	total += offensive(ms)
	if ms.Position == player.PositionGoalkeeper {
		total += goalkeeping(ms)
	} else {
		total += outfieldDefense(ms)
	}
	total += positional(ms)
	return total
}

func ratingTier(rating float64) float64 {
	switch {
	case rating >= 9:
		return 3
	case rating >= 8:
		return 2
	case rating >= 7:
		return 1
	case rating >= 6.5:
		return 0
	case rating >= 6:
		return -1
	case rating >= 3:
		return -2
	default:
		return 0
	}
}

func negatives(ms matchstat.MatchStat) float64 {
	// Fouls that conceded a penalty are already charged at the penalty
	// rate, so only the remainder is charged as plain fouls.
	realFouls := clampZero(ms.Fouls - ms.PenaltyConceded)

	return ms.OwnGoals*-2 +
		ms.YellowCards*-1 +
		ms.TotalOffside*-0.25 +
		ms.Dispossessed*-0.25 +
		ms.PenaltyConceded*-2 +
		ms.PenaltyMiss*-3 +
		realFouls*-0.5
}

func redCard(ms matchstat.MatchStat) float64 {
	if ms.RedCards > 0 {
		return -3
	}
	return 0
}

func participation(ms matchstat.MatchStat) float64 {
	if ms.MinutesPlayed > 75 {
		return 1
	}
	return 0
}

func performanceBonuses(ms matchstat.MatchStat) float64 {
	bonus := 0.0
	if ms.TotalPass >= 40 && ratio(ms.AccuratePass, ms.TotalPass) >= 0.9 {
		bonus++
	}
	if ms.AccurateLongBalls >= 3 && ratio(ms.AccurateLongBalls, ms.TotalLongBalls) >= 0.6 {
		bonus++
	}
	if ms.DuelWon >= 3 && ratio(ms.DuelWon, ms.DuelWon+ms.DuelLost) >= 0.5 {
		bonus++
	}
	if ms.WonContest >= 3 && ratio(ms.WonContest, ms.TotalContest) >= 0.6 {
		bonus++
	}
	return bonus
}

func offensive(ms matchstat.MatchStat) float64 {
	// On-target attempts already include goals and woodwork hits, which
	// score on their own; the remainder is what counts here.
	realShots := clampZero(ms.OnTargetAttempts - ms.HitWoodwork - ms.Goals)

	return ms.KeyPass*0.75 +
		ms.PenaltySave*5 +
		ms.PenaltyWon*2 +
		ms.WasFouled*0.5 +
		ms.ShotOffTarget*0.75 +
		realShots*1.5 +
		ms.HitWoodwork*3
}

func outfieldDefense(ms matchstat.MatchStat) float64 {
	return ms.TotalClearance*0.1 +
		ms.OutfielderBlock*0.25 +
		ms.InterceptionWon*0.5 +
		ms.WonTackle*0.75 +
		ms.GoalLineClearance*2
}

func goalkeeping(ms matchstat.MatchStat) float64 {
	outsideBoxSaves := clampZero(ms.Saves - ms.SavedShotsInsideBox)

	return ms.SavedShotsInsideBox*1.0 +
		outsideBoxSaves*0.5 +
		ms.KeeperSweeper*1 +
		ms.GoalLineClearance*2 +
		ms.GoalsPrevented*2
}

func positional(ms matchstat.MatchStat) float64 {
	total := ms.Goals*6 + ms.GoalAssist*4

	if ms.MinutesPlayed <= 0 {
		return total
	}
	switch ms.Position {
	case player.PositionGoalkeeper:
		if ms.GoalsConceded == 0 {
			total += 4
		}
		total += ms.GoalsConceded * -0.5
	case player.PositionDefender:
		if ms.GoalsConceded == 0 {
			total += 3
		}
		total += ms.GoalsConceded * -0.5
	}
	return total
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clampZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
