package standings

import (
	"sort"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
)

// Row is one team's aggregate over all finished rounds. Rows are
// rebuilt from scratch on every aggregation, never patched in place.
type Row struct {
	TeamID        string
	Points        int
	GamesPlayed   int
	Wins          int
	Draws         int
	Losses        int
	PointsFor     float64
	PointsAgainst float64
	EfficiencyPct float64
}

// BuildTable aggregates settled scores over all head-to-head matchups
// of rounds the predicate reports as finished. League points are 3/1/0;
// efficiency is league points over the maximum attainable, as a
// percentage. Sorted by efficiency descending, points-for breaking
// ties. Zero finished rounds yield an empty table.
func BuildTable(matchups []matchup.Matchup, rows []settlement.ScoreRow, roundFinished func(round int) bool) []Row {
	totals := make(map[int]map[string]float64)
	for _, r := range rows {
		if !r.IsActive {
			continue
		}
		byTeam, ok := totals[r.Round]
		if !ok {
			byTeam = make(map[string]float64)
			totals[r.Round] = byTeam
		}
		byTeam[r.TeamID] += r.Points
	}

	acc := make(map[string]*Row)
	team := func(id string) *Row {
		row, ok := acc[id]
		if !ok {
			row = &Row{TeamID: id}
			acc[id] = row
		}
		return row
	}

	for _, m := range matchups {
		if !roundFinished(m.Round) {
			continue
		}
		homeScore := totals[m.Round][m.HomeTeamID]
		awayScore := totals[m.Round][m.AwayTeamID]

		home, away := team(m.HomeTeamID), team(m.AwayTeamID)
		home.GamesPlayed++
		away.GamesPlayed++
		home.PointsFor += homeScore
		home.PointsAgainst += awayScore
		away.PointsFor += awayScore
		away.PointsAgainst += homeScore

		switch {
		case homeScore > awayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case awayScore > homeScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	table := make([]Row, 0, len(acc))
	for _, row := range acc {
		if row.GamesPlayed > 0 {
			row.EfficiencyPct = float64(row.Points) / float64(row.GamesPlayed*3) * 100
		}
		table = append(table, *row)
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].EfficiencyPct != table[j].EfficiencyPct {
			return table[i].EfficiencyPct > table[j].EfficiencyPct
		}
		if table[i].PointsFor != table[j].PointsFor {
			return table[i].PointsFor > table[j].PointsFor
		}
		return table[i].TeamID < table[j].TeamID
	})
	return table
}
