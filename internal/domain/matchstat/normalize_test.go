package matchstat

import (
	"math"
	"testing"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

func intPtr(v int) *int { return &v }

func TestNormalizeDefaultsMissingFieldsToZero(t *testing.T) {
	t.Parallel()

	g := game.Game{ID: 10, HomeScore: intPtr(2), AwayScore: intPtr(1)}
	row := RawRow{
		GameID:   10,
		PlayerID: 7,
		Position: "D",
		Side:     game.SideHome,
		Stats: map[string]any{
			"minutesPlayed": 90,
			"rating":        "7.4",
			"totalPass":     float64(41),
			"fouls":         math.NaN(),
			"duelWon":       "not-a-number",
		},
	}

	ms, known := Normalize(row, g, Overrides{})
	if !known {
		t.Fatalf("expected position D to be recognized")
	}
	if ms.Position != player.PositionDefender {
		t.Fatalf("unexpected position: %s", ms.Position)
	}
	if ms.MinutesPlayed != 90 || ms.Rating != 7.4 || ms.TotalPass != 41 {
		t.Fatalf("numeric coercion mismatch: %+v", ms)
	}
	if ms.Fouls != 0 || ms.DuelWon != 0 {
		t.Fatalf("NaN and junk values must normalize to zero: %+v", ms)
	}
	if ms.Goals != 0 || ms.Saves != 0 || ms.KeyPass != 0 {
		t.Fatalf("missing fields must default to zero: %+v", ms)
	}
	// home player concedes the away score
	if ms.GoalsConceded != 1 {
		t.Fatalf("goals conceded = %v, want 1", ms.GoalsConceded)
	}
}

func TestNormalizeGoalsConcededFollowsSide(t *testing.T) {
	t.Parallel()

	g := game.Game{ID: 10, HomeScore: intPtr(3), AwayScore: intPtr(0)}
	ms, _ := Normalize(RawRow{GameID: 10, PlayerID: 1, Position: "G", Side: game.SideAway}, g, Overrides{})
	if ms.GoalsConceded != 3 {
		t.Fatalf("away keeper conceded = %v, want 3", ms.GoalsConceded)
	}
}

func TestNormalizeUnknownPositionDefaultsToMidfielder(t *testing.T) {
	t.Parallel()

	ms, known := Normalize(RawRow{PlayerID: 5, Position: "XX"}, game.Game{}, Overrides{})
	if known {
		t.Fatalf("XX must not count as a recognized position")
	}
	if ms.Position != player.PositionMidfielder {
		t.Fatalf("fallback position = %s, want M", ms.Position)
	}
}

func TestNormalizeOverridesWin(t *testing.T) {
	t.Parallel()

	ov := Overrides{
		PositionByPlayer: map[int64]player.Position{5: player.PositionForward},
		CardsByPlayer:    map[int64]CardCount{5: {Yellow: 2, Red: 1}},
	}
	row := RawRow{
		PlayerID: 5,
		Position: "D",
		Stats:    map[string]any{"yellowCards": 0, "redCards": 0},
	}

	ms, known := Normalize(row, game.Game{}, ov)
	if !known {
		t.Fatalf("overridden position must count as recognized")
	}
	if ms.Position != player.PositionForward {
		t.Fatalf("position override lost: %s", ms.Position)
	}
	if ms.YellowCards != 2 || ms.RedCards != 1 {
		t.Fatalf("card override lost: yellow=%v red=%v", ms.YellowCards, ms.RedCards)
	}
}
