package market

import (
	"errors"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
)

// State is the single transaction state the market is in at a given
// instant. States are mutually exclusive by construction.
type State string

const (
	StateAuctionOpen    State = "AUCTION_OPEN"
	StateFreeAgencyOpen State = "FREE_AGENCY_OPEN"
	StateLocked         State = "LOCKED"
	StateSeasonFinished State = "SEASON_FINISHED"
)

// ErrRoundNotFound is returned when an explicitly requested round has
// no schedule row.
var ErrRoundNotFound = errors.New("round not found")

// deadlineLayout matches what league managers see in announcements.
const deadlineLayout = "02/01/2006 15:04"

// Snapshot is the resolved market state plus the active window's
// closing instant for display.
type Snapshot struct {
	State    State
	Round    int
	ClosesAt time.Time
	Deadline string
}

// Resolve computes the market state at now. A positive requested round
// is looked up explicitly; otherwise the first round whose lineup lock
// is still in the future is used. No such round means the season is
// over. When schedule windows overlap, auction wins over free agency,
// which wins over locked.
func Resolve(now time.Time, rounds []schedule.Round, requested int) (Snapshot, error) {
	schedule.Sort(rounds)

	var current schedule.Round
	found := false
	if requested > 0 {
		for _, r := range rounds {
			if r.Number == requested {
				current, found = r, true
				break
			}
		}
		if !found {
			return Snapshot{}, ErrRoundNotFound
		}
	} else {
		for _, r := range rounds {
			if now.Before(r.LineupLockAt) {
				current, found = r, true
				break
			}
		}
		if !found {
			return Snapshot{State: StateSeasonFinished}, nil
		}
	}

	snap := Snapshot{Round: current.Number}
	switch {
	case within(now, current.AuctionOpensAt, current.AuctionClosesAt):
		snap.State = StateAuctionOpen
		snap.ClosesAt = current.AuctionClosesAt
	case within(now, current.FreeAgencyOpensAt, current.FreeAgencyClosesAt):
		snap.State = StateFreeAgencyOpen
		snap.ClosesAt = current.FreeAgencyClosesAt
	default:
		snap.State = StateLocked
		snap.ClosesAt = current.FirstKickoffAt
	}
	if !snap.ClosesAt.IsZero() {
		snap.Deadline = snap.ClosesAt.Format(deadlineLayout)
	}
	return snap, nil
}

func within(now, open, close time.Time) bool {
	if open.IsZero() || close.IsZero() {
		return false
	}
	return !now.Before(open) && now.Before(close)
}
