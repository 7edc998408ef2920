package lineup

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
)

// Role is a lineup slot role: either a starter or a bench slot with a
// substitution priority inside its position group. The string encoding
// ("TITULAR", "PRI n") only exists at the boundary; everything past
// parsing works with the tagged form.
type Role struct {
	Starter  bool
	Priority int
}

func Starter() Role { return Role{Starter: true} }

func BenchPriority(n int) Role { return Role{Priority: n} }

func (r Role) IsBench() bool { return !r.Starter }

func (r Role) String() string {
	if r.Starter {
		return "TITULAR"
	}
	return fmt.Sprintf("PRI %d", r.Priority)
}

// ParseRole decodes the boundary encoding. Bench priorities start at 1.
func ParseRole(raw string) (Role, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "TITULAR" {
		return Starter(), nil
	}
	if rest, ok := strings.CutPrefix(value, "PRI"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			return Role{}, fmt.Errorf("invalid bench priority %q", raw)
		}
		return BenchPriority(n), nil
	}
	return Role{}, fmt.Errorf("invalid role %q", raw)
}

// Entry is one player slot in a team's round lineup.
type Entry struct {
	TeamID    string
	Round     int
	PlayerID  int64
	Role      Role
	Position  player.Position
	IsCaptain bool
}

// Lineup is the full slot set a team declared for one round. At most
// one lineup exists per (team, round); resubmission overwrites it.
type Lineup struct {
	TeamID    string
	Round     int
	Entries   []Entry
	UpdatedAt time.Time
}

// Starters returns the starting entries in declaration order.
func (l Lineup) Starters() []Entry {
	out := make([]Entry, 0, len(l.Entries))
	for _, e := range l.Entries {
		if e.Role.Starter {
			out = append(out, e)
		}
	}
	return out
}

// BenchByPosition groups bench entries per position, each group sorted
// by ascending priority.
func (l Lineup) BenchByPosition() map[player.Position][]Entry {
	out := make(map[player.Position][]Entry)
	for _, e := range l.Entries {
		if e.Role.IsBench() {
			out[e.Position] = append(out[e.Position], e)
		}
	}
	for pos := range out {
		group := out[pos]
		for i := 1; i < len(group); i++ {
			for j := i; j > 0 && group[j].Role.Priority < group[j-1].Role.Priority; j-- {
				group[j], group[j-1] = group[j-1], group[j]
			}
		}
		out[pos] = group
	}
	return out
}
