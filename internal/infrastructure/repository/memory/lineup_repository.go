package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
)

type LineupRepository struct {
	mu      sync.RWMutex
	lineups map[string]lineup.Lineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{lineups: make(map[string]lineup.Lineup)}
}

func lineupKey(teamID string, round int) string {
	return fmt.Sprintf("%s::%d", teamID, round)
}

func cloneLineup(l lineup.Lineup) lineup.Lineup {
	out := l
	out.Entries = make([]lineup.Entry, len(l.Entries))
	copy(out.Entries, l.Entries)
	return out
}

func (r *LineupRepository) GetByTeamAndRound(_ context.Context, teamID string, round int) (lineup.Lineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lineups[lineupKey(teamID, round)]
	if !ok {
		return lineup.Lineup{}, false, nil
	}

	return cloneLineup(l), true, nil
}

func (r *LineupRepository) ListByRound(_ context.Context, round int) ([]lineup.Lineup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]lineup.Lineup, 0)
	for _, l := range r.lineups {
		if l.Round == round {
			out = append(out, cloneLineup(l))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func (r *LineupRepository) Replace(_ context.Context, l lineup.Lineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lineups[lineupKey(l.TeamID, l.Round)] = cloneLineup(l)

	return nil
}
