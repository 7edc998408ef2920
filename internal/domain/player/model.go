package player

import "fmt"

// Position is the single-letter position code used across scoring and
// substitution rules. It matches the sports-data provider's coding.
type Position string

const (
	PositionGoalkeeper Position = "G"
	PositionDefender   Position = "D"
	PositionMidfielder Position = "M"
	PositionForward    Position = "F"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition maps a raw provider code to a canonical Position.
// Unknown or empty codes fall back to Midfielder; the second return
// reports whether the code was recognized so callers can log the
// fallback as a data-quality concern.
func ParsePosition(raw string) (Position, bool) {
	p := Position(raw)
	if _, ok := AllPositions[p]; ok {
		return p, true
	}
	return PositionMidfielder, false
}

// Player is a real-world athlete selectable onto fantasy rosters.
type Player struct {
	ID       int64
	Name     string
	ClubID   int64
	Position Position
}

func (p Player) Validate() error {
	if p.ID == 0 {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.ClubID == 0 {
		return fmt.Errorf("player club id is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
