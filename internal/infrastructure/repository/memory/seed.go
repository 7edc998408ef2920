package memory

import (
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
)

// Seed is a small self-consistent dataset for local runs without a
// database: four clubs, two fantasy teams, two rounds.
type Seed struct {
	Players  []player.Player
	Games    []game.Game
	Matchups []matchup.Matchup
	Rounds   []schedule.Round
}

// DefaultSeed anchors the schedule around now so the market clock has
// something open to report.
func DefaultSeed(now time.Time) Seed {
	round2Kickoff := now.Add(72 * time.Hour)

	return Seed{
		Players: []player.Player{
			{ID: 101, Name: "A. Santos", ClubID: 1, Position: player.PositionGoalkeeper},
			{ID: 102, Name: "R. Lima", ClubID: 1, Position: player.PositionDefender},
			{ID: 103, Name: "J. Costa", ClubID: 2, Position: player.PositionMidfielder},
			{ID: 104, Name: "M. Alves", ClubID: 2, Position: player.PositionForward},
			{ID: 105, Name: "T. Rocha", ClubID: 3, Position: player.PositionDefender},
			{ID: 106, Name: "P. Souza", ClubID: 3, Position: player.PositionMidfielder},
			{ID: 107, Name: "E. Nunes", ClubID: 4, Position: player.PositionForward},
			{ID: 108, Name: "L. Brito", ClubID: 4, Position: player.PositionGoalkeeper},
		},
		Games: []game.Game{
			{
				ID: 9001, Round: 1,
				HomeClub: "Azul FC", AwayClub: "Rubro SC",
				HomeClubID: 1, AwayClubID: 2,
				KickoffAt: now.Add(-96 * time.Hour),
				Status:    game.StatusFinished,
			},
			{
				ID: 9002, Round: 1,
				HomeClub: "Verde EC", AwayClub: "Alvinegro FR",
				HomeClubID: 3, AwayClubID: 4,
				KickoffAt: now.Add(-94 * time.Hour),
				Status:    game.StatusFinished,
			},
			{
				ID: 9003, Round: 2,
				HomeClub: "Rubro SC", AwayClub: "Verde EC",
				HomeClubID: 2, AwayClubID: 3,
				KickoffAt: round2Kickoff,
				Status:    game.StatusScheduled,
			},
			{
				ID: 9004, Round: 2,
				HomeClub: "Alvinegro FR", AwayClub: "Azul FC",
				HomeClubID: 4, AwayClubID: 1,
				KickoffAt: round2Kickoff.Add(2 * time.Hour),
				Status:    game.StatusScheduled,
			},
		},
		Matchups: []matchup.Matchup{
			{Round: 1, HomeTeamID: "time-alpha", AwayTeamID: "time-beta"},
			{Round: 2, HomeTeamID: "time-beta", AwayTeamID: "time-alpha"},
		},
		Rounds: []schedule.Round{
			{
				Number:             1,
				AuctionOpensAt:     now.Add(-9 * 24 * time.Hour),
				AuctionClosesAt:    now.Add(-5 * 24 * time.Hour),
				FreeAgencyOpensAt:  now.Add(-5 * 24 * time.Hour),
				FreeAgencyClosesAt: now.Add(-98 * time.Hour),
				LineupLockAt:       now.Add(-98 * time.Hour),
				FirstKickoffAt:     now.Add(-96 * time.Hour),
				LastKickoffAt:      now.Add(-94 * time.Hour),
			},
			{
				Number:             2,
				AuctionOpensAt:     now.Add(-24 * time.Hour),
				AuctionClosesAt:    round2Kickoff.Add(-24 * time.Hour),
				FreeAgencyOpensAt:  round2Kickoff.Add(-24 * time.Hour),
				FreeAgencyClosesAt: round2Kickoff.Add(-2 * time.Hour),
				LineupLockAt:       round2Kickoff.Add(-2 * time.Hour),
				FirstKickoffAt:     round2Kickoff,
				LastKickoffAt:      round2Kickoff.Add(2 * time.Hour),
			},
		},
	}
}
