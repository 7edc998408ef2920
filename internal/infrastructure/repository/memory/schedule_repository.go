package memory

import (
	"context"
	"sync"

	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu     sync.RWMutex
	rounds map[int]schedule.Round
}

func NewScheduleRepository(rounds []schedule.Round) *ScheduleRepository {
	index := make(map[int]schedule.Round, len(rounds))
	for _, r := range rounds {
		index[r.Number] = r
	}
	return &ScheduleRepository{rounds: index}
}

func (r *ScheduleRepository) ListAll(_ context.Context) ([]schedule.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Round, 0, len(r.rounds))
	for _, round := range r.rounds {
		out = append(out, round)
	}
	schedule.Sort(out)

	return out, nil
}

func (r *ScheduleRepository) GetByNumber(_ context.Context, number int) (schedule.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	round, ok := r.rounds[number]
	return round, ok, nil
}

func (r *ScheduleRepository) UpsertMany(_ context.Context, rounds []schedule.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, round := range rounds {
		r.rounds[round.Number] = round
	}

	return nil
}
