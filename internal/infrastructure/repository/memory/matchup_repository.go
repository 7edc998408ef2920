package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
)

type MatchupRepository struct {
	mu       sync.RWMutex
	matchups map[string]matchup.Matchup
}

func NewMatchupRepository(matchups []matchup.Matchup) *MatchupRepository {
	index := make(map[string]matchup.Matchup, len(matchups))
	for _, m := range matchups {
		index[matchupKey(m)] = m
	}
	return &MatchupRepository{matchups: index}
}

func matchupKey(m matchup.Matchup) string {
	return fmt.Sprintf("%d::%s::%s", m.Round, m.HomeTeamID, m.AwayTeamID)
}

func (r *MatchupRepository) ListAll(_ context.Context) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0, len(r.matchups))
	for _, m := range r.matchups {
		out = append(out, m)
	}
	sortMatchups(out)

	return out, nil
}

func (r *MatchupRepository) ListByRound(_ context.Context, round int) ([]matchup.Matchup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchup.Matchup, 0)
	for _, m := range r.matchups {
		if m.Round == round {
			out = append(out, m)
		}
	}
	sortMatchups(out)

	return out, nil
}

func (r *MatchupRepository) UpsertMany(_ context.Context, matchups []matchup.Matchup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range matchups {
		r.matchups[matchupKey(m)] = m
	}

	return nil
}

func sortMatchups(matchups []matchup.Matchup) {
	sort.Slice(matchups, func(i, j int) bool {
		if matchups[i].Round != matchups[j].Round {
			return matchups[i].Round < matchups[j].Round
		}
		return matchups[i].HomeTeamID < matchups[j].HomeTeamID
	})
}
