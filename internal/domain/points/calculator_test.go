package points

import (
	"math"
	"testing"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCalculateZeroLineIsZero(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{Position: player.PositionMidfielder}
	if got := Calculate(ms); got != 0 {
		t.Fatalf("zero line scored %v, want 0", got)
	}
}

func TestCalculateRatingTiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		rating float64
		want   float64
	}{
		{9.0, 3}, {8.5, 2}, {7.0, 1}, {6.5, 0}, {6.0, -1}, {3.0, -2}, {2.9, 0}, {0, 0},
	}
	for _, tc := range cases {
		ms := matchstat.MatchStat{Position: player.PositionForward, Rating: tc.rating}
		if got := Calculate(ms); !almostEqual(got, tc.want) {
			t.Fatalf("rating %v scored %v, want %v", tc.rating, got, tc.want)
		}
	}
}

func TestCalculateDefenderCleanSheetBoundary(t *testing.T) {
	t.Parallel()

	// One minute on the pitch is enough for the clean-sheet bonus, but
	// not for the participation point.
	ms := matchstat.MatchStat{
		Position:      player.PositionDefender,
		MinutesPlayed: 1,
		GoalsConceded: 0,
	}
	if got := Calculate(ms); !almostEqual(got, 3) {
		t.Fatalf("defender clean sheet scored %v, want 3", got)
	}

	// Unused substitutes get nothing.
	ms.MinutesPlayed = 0
	if got := Calculate(ms); got != 0 {
		t.Fatalf("unused defender scored %v, want 0", got)
	}
}

func TestCalculateConcededPenaltyAppliesToBackline(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:      player.PositionGoalkeeper,
		MinutesPlayed: 90,
		GoalsConceded: 2,
	}
	// participation +1, conceded 2*-0.5 = -1
	if got := Calculate(ms); !almostEqual(got, 0) {
		t.Fatalf("keeper with 2 conceded scored %v, want 0", got)
	}

	ms.Position = player.PositionForward
	// forwards are not charged for conceded goals
	if got := Calculate(ms); !almostEqual(got, 1) {
		t.Fatalf("forward with 2 conceded scored %v, want 1", got)
	}
}

func TestCalculatePassingBonusThreshold(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:      player.PositionMidfielder,
		TotalPass:     40,
		AccuratePass:  36, // exactly 90%
		GoalsConceded: 1,
	}
	if got := Calculate(ms); !almostEqual(got, 1) {
		t.Fatalf("90%% accuracy scored %v, want 1", got)
	}

	ms.AccuratePass = 35 // 87.5%
	if got := Calculate(ms); got != 0 {
		t.Fatalf("87.5%% accuracy scored %v, want 0", got)
	}
}

func TestCalculateBonusRatiosSafeOnZeroDenominator(t *testing.T) {
	t.Parallel()

	// duelWon >= 3 with zero losses: ratio is won/(won+lost) = 1.0
	ms := matchstat.MatchStat{Position: player.PositionMidfielder, DuelWon: 3, GoalsConceded: 1}
	if got := Calculate(ms); !almostEqual(got, 1) {
		t.Fatalf("3/3 duels scored %v, want 1", got)
	}

	// wonContest without totalContest would divide by zero; the ratio
	// defaults to 0 and the bonus fails.
	ms = matchstat.MatchStat{Position: player.PositionMidfielder, WonContest: 3, GoalsConceded: 1}
	if got := Calculate(ms); got != 0 {
		t.Fatalf("contest bonus with zero attempts scored %v, want 0", got)
	}
}

func TestCalculateFoulsNetOfConcededPenalties(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:        player.PositionMidfielder,
		Fouls:           3,
		PenaltyConceded: 1,
		GoalsConceded:   1,
	}
	// penalty -2, real fouls (3-1)*-0.5 = -1
	if got := Calculate(ms); !almostEqual(got, -3) {
		t.Fatalf("fouls with penalty scored %v, want -3", got)
	}

	// More conceded penalties than fouls must not turn into a credit.
	ms.Fouls = 0
	if got := Calculate(ms); !almostEqual(got, -2) {
		t.Fatalf("penalty without fouls scored %v, want -2", got)
	}
}

func TestCalculateRealShotsExcludeGoalsAndWoodwork(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:         player.PositionForward,
		Goals:            1,
		HitWoodwork:      1,
		OnTargetAttempts: 3,
	}
	// goals 6, woodwork 3, real shots (3-1-1)*1.5 = 1.5
	if got := Calculate(ms); !almostEqual(got, 10.5) {
		t.Fatalf("shot mix scored %v, want 10.5", got)
	}

	// A goal recorded without an on-target attempt must not go negative.
	ms = matchstat.MatchStat{Position: player.PositionForward, Goals: 1}
	if got := Calculate(ms); !almostEqual(got, 6) {
		t.Fatalf("lone goal scored %v, want 6", got)
	}
}

func TestCalculateGoalkeeperVsOutfieldExclusivity(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:            player.PositionGoalkeeper,
		MinutesPlayed:       90,
		GoalsConceded:       1,
		Saves:               5,
		SavedShotsInsideBox: 3,
		KeeperSweeper:       1,
		GoalsPrevented:      0.8,
		TotalClearance:      4,
		InterceptionWon:     2,
		WonTackle:           1,
	}
	// participation 1, conceded -0.5, in-box 3, outside (5-3)*0.5 = 1,
	// sweeper 1, prevented 1.6; outfield stats ignored for keepers.
	gk := Calculate(ms)
	if !almostEqual(gk, 7.1) {
		t.Fatalf("keeper scored %v, want 7.1", gk)
	}

	ms.Position = player.PositionDefender
	// participation 1, conceded -0.5, clearances 0.4, interceptions 1,
	// tackles 0.75; keeper stats ignored for outfielders.
	def := Calculate(ms)
	if !almostEqual(def, 2.65) {
		t.Fatalf("defender scored %v, want 2.65", def)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	t.Parallel()

	ms := matchstat.MatchStat{
		Position:      player.PositionMidfielder,
		MinutesPlayed: 90,
		Rating:        7.8,
		Goals:         1,
		KeyPass:       3,
		TotalPass:     52,
		AccuratePass:  49,
		GoalsConceded: 2,
	}
	first := Calculate(ms)
	for i := 0; i < 10; i++ {
		if got := Calculate(ms); got != first {
			t.Fatalf("calculation drifted: %v then %v", first, got)
		}
	}
}
