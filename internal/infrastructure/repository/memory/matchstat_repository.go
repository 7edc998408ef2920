package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
)

// MatchStatRepository stores stat lines per game. Round queries join
// through the game repository, mirroring the SQL layout.
type MatchStatRepository struct {
	mu     sync.RWMutex
	byGame map[int64][]matchstat.MatchStat
	games  *GameRepository
}

func NewMatchStatRepository(games *GameRepository) *MatchStatRepository {
	return &MatchStatRepository{
		byGame: make(map[int64][]matchstat.MatchStat),
		games:  games,
	}
}

func (r *MatchStatRepository) ListByGame(_ context.Context, gameID int64) ([]matchstat.MatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstat.MatchStat, 0, len(r.byGame[gameID]))
	out = append(out, r.byGame[gameID]...)

	return out, nil
}

func (r *MatchStatRepository) ListByRound(ctx context.Context, round int) ([]matchstat.MatchStat, error) {
	games, err := r.games.ListByRound(ctx, round)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchstat.MatchStat, 0)
	for _, g := range games {
		out = append(out, r.byGame[g.ID]...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameID != out[j].GameID {
			return out[i].GameID < out[j].GameID
		}
		return out[i].PlayerID < out[j].PlayerID
	})

	return out, nil
}

func (r *MatchStatRepository) GetByGameAndPlayer(_ context.Context, gameID, playerID int64) (matchstat.MatchStat, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ms := range r.byGame[gameID] {
		if ms.PlayerID == playerID {
			return ms, true, nil
		}
	}

	return matchstat.MatchStat{}, false, nil
}

func (r *MatchStatRepository) ReplaceByGame(_ context.Context, gameID int64, stats []matchstat.MatchStat) error {
	cloned := make([]matchstat.MatchStat, len(stats))
	copy(cloned, stats)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(cloned) == 0 {
		delete(r.byGame, gameID)
		return nil
	}
	r.byGame[gameID] = cloned

	return nil
}
