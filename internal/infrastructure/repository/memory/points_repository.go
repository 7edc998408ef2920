package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
)

type PointsRepository struct {
	mu     sync.RWMutex
	byGame map[int64][]points.Record
	games  *GameRepository
}

func NewPointsRepository(games *GameRepository) *PointsRepository {
	return &PointsRepository{
		byGame: make(map[int64][]points.Record),
		games:  games,
	}
}

func (r *PointsRepository) ListByGame(_ context.Context, gameID int64) ([]points.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.Record, 0, len(r.byGame[gameID]))
	out = append(out, r.byGame[gameID]...)

	return out, nil
}

func (r *PointsRepository) ListByRound(ctx context.Context, round int) ([]points.Record, error) {
	games, err := r.games.ListByRound(ctx, round)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]points.Record, 0)
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

func (r *PointsRepository) ReplaceByGame(_ context.Context, gameID int64, records []points.Record) error {
	cloned := make([]points.Record, len(records))
	copy(cloned, records)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(cloned) == 0 {
		delete(r.byGame, gameID)
		return nil
	}
	r.byGame[gameID] = cloned

	return nil
}
