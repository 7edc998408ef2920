package standings

import (
	"testing"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
)

func score(team string, round int, points float64, active bool) settlement.ScoreRow {
	return settlement.ScoreRow{TeamID: team, Round: round, Points: points, IsActive: active}
}

func TestBuildTableTwoTeamsTwoRounds(t *testing.T) {
	t.Parallel()

	matchups := []matchup.Matchup{
		{Round: 1, HomeTeamID: "a", AwayTeamID: "b"},
		{Round: 2, HomeTeamID: "b", AwayTeamID: "a"},
	}
	rows := []settlement.ScoreRow{
		score("a", 1, 60, true),
		score("b", 1, 45, true),
		score("a", 2, 52.5, true),
		score("b", 2, 50, true),
		// inactive rows never count
		score("b", 2, 99, false),
	}

	table := BuildTable(matchups, rows, func(int) bool { return true })
	if len(table) != 2 {
		t.Fatalf("table size = %d, want 2", len(table))
	}

	a := table[0]
	if a.TeamID != "a" || a.Points != 6 || a.Wins != 2 || a.GamesPlayed != 2 {
		t.Fatalf("team a row wrong: %+v", a)
	}
	if a.EfficiencyPct != 100 {
		t.Fatalf("team a efficiency = %v, want 100", a.EfficiencyPct)
	}
	if a.PointsFor != 112.5 || a.PointsAgainst != 95 {
		t.Fatalf("team a totals wrong: %+v", a)
	}

	b := table[1]
	if b.Points != 0 || b.Losses != 2 || b.EfficiencyPct != 0 {
		t.Fatalf("team b row wrong: %+v", b)
	}
}

func TestBuildTableDrawAndTieBreak(t *testing.T) {
	t.Parallel()

	matchups := []matchup.Matchup{
		{Round: 1, HomeTeamID: "a", AwayTeamID: "b"},
		{Round: 1, HomeTeamID: "c", AwayTeamID: "d"},
	}
	rows := []settlement.ScoreRow{
		score("a", 1, 40, true),
		score("b", 1, 40, true),
		score("c", 1, 55, true),
		score("d", 1, 55, true),
	}

	table := BuildTable(matchups, rows, func(int) bool { return true })
	for _, row := range table {
		if row.Draws != 1 || row.Points != 1 {
			t.Fatalf("expected a draw everywhere: %+v", row)
		}
	}
	// Equal efficiency: points-for decides, c and d above a and b.
	if table[0].PointsFor != 55 || table[1].PointsFor != 55 {
		t.Fatalf("tie break by points-for failed: %+v", table)
	}
}

func TestBuildTableSkipsUnfinishedRounds(t *testing.T) {
	t.Parallel()

	matchups := []matchup.Matchup{
		{Round: 1, HomeTeamID: "a", AwayTeamID: "b"},
		{Round: 2, HomeTeamID: "a", AwayTeamID: "b"},
	}
	rows := []settlement.ScoreRow{
		score("a", 1, 10, true),
		score("b", 1, 5, true),
		score("a", 2, 0, true),
		score("b", 2, 80, true),
	}

	table := BuildTable(matchups, rows, func(round int) bool { return round == 1 })
	if len(table) != 2 {
		t.Fatalf("table size = %d, want 2", len(table))
	}
	if table[0].TeamID != "a" || table[0].GamesPlayed != 1 {
		t.Fatalf("only round 1 should count: %+v", table)
	}
}

func TestBuildTableEmptyWhenNothingFinished(t *testing.T) {
	t.Parallel()

	matchups := []matchup.Matchup{{Round: 1, HomeTeamID: "a", AwayTeamID: "b"}}
	table := BuildTable(matchups, nil, func(int) bool { return false })
	if len(table) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}
