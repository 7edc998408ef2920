package memory

import (
	"context"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/standings"
)

type StandingsRepository struct {
	mu   sync.RWMutex
	rows []standings.Row
}

func NewStandingsRepository() *StandingsRepository {
	return &StandingsRepository{}
}

func (r *StandingsRepository) List(_ context.Context) ([]standings.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standings.Row, len(r.rows))
	copy(out, r.rows)

	return out, nil
}

func (r *StandingsRepository) Replace(_ context.Context, rows []standings.Row) error {
	cloned := make([]standings.Row, len(rows))
	copy(cloned, rows)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = cloned

	return nil
}
