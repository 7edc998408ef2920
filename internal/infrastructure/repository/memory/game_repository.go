package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	games map[int64]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	index := make(map[int64]game.Game, len(games))
	for _, g := range games {
		index[g.ID] = g
	}
	return &GameRepository{games: index}
}

func (r *GameRepository) List(_ context.Context) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0, len(r.games))
	for _, g := range r.games {
		out = append(out, g)
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) ListByRound(_ context.Context, round int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.games {
		if g.Round == round {
			out = append(out, g)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.games[gameID]
	return g, ok, nil
}

func (r *GameRepository) UpsertMany(_ context.Context, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		r.games[g.ID] = g
	}

	return nil
}

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].Round != games[j].Round {
			return games[i].Round < games[j].Round
		}
		return games[i].ID < games[j].ID
	})
}
