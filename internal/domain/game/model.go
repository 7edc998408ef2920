package game

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// FinishedGraceAfterKickoff is how long after kickoff a game is assumed
// over when the provider status is stale or missing.
const FinishedGraceAfterKickoff = 2 * time.Hour

// RoundSettleBuffer is how long after a round's last kickoff the round
// counts as fully finished for standings purposes.
const RoundSettleBuffer = 150 * time.Minute

// Side marks which club a player lined up for in one game.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Game is one real-world match of the underlying competition.
type Game struct {
	ID         int64
	Round      int
	HomeClub   string
	AwayClub   string
	HomeClubID int64
	AwayClubID int64
	KickoffAt  time.Time
	HomeScore  *int
	AwayScore  *int
	Status     string
}

// ConcededBy returns the goals scored against the given side, i.e. the
// opposing side's score. Unknown scores count as zero.
func (g Game) ConcededBy(side Side) float64 {
	score := g.AwayScore
	if side == SideAway {
		score = g.HomeScore
	}
	if score == nil {
		return 0
	}
	return float64(*score)
}

// FinishedBy reports whether the game can be treated as over at the
// given instant. A finished or abandoned provider status is
// authoritative; otherwise the kickoff grace window decides, so a game
// with a stale status still settles eventually.
func (g Game) FinishedBy(now time.Time) bool {
	if IsFinishedStatus(g.Status) || IsCancelledLikeStatus(g.Status) {
		return true
	}
	if g.KickoffAt.IsZero() {
		return false
	}
	return now.After(g.KickoffAt.Add(FinishedGraceAfterKickoff))
}

// RoundFinishedBy reports whether every game of the round kicked off
// longer than RoundSettleBuffer before now. Rounds with no games are
// not finished.
func RoundFinishedBy(games []Game, round int, now time.Time) bool {
	found := false
	for _, g := range games {
		if g.Round != round {
			continue
		}
		found = true
		if g.KickoffAt.IsZero() || !now.After(g.KickoffAt.Add(RoundSettleBuffer)) {
			return false
		}
	}
	return found
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}
