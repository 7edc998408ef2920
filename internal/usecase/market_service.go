package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/market"
	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
)

// MarketService answers "what transactions are allowed right now".
type MarketService struct {
	scheduleRepo schedule.Repository
	now          func() time.Time
}

func NewMarketService(scheduleRepo schedule.Repository) *MarketService {
	return &MarketService{
		scheduleRepo: scheduleRepo,
		now:          time.Now,
	}
}

// WithClock overrides the market clock. Tests only.
func (s *MarketService) WithClock(now func() time.Time) *MarketService {
	if now != nil {
		s.now = now
	}
	return s
}

// State resolves the market state. A requested round of zero means
// auto-select the next open round.
func (s *MarketService) State(ctx context.Context, requested int) (market.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.State")
	defer span.End()

	if requested < 0 {
		return market.Snapshot{}, fmt.Errorf("%w: round must not be negative", ErrInvalidInput)
	}

	rounds, err := s.scheduleRepo.ListAll(ctx)
	if err != nil {
		return market.Snapshot{}, fmt.Errorf("list schedule: %w", err)
	}

	snap, err := market.Resolve(s.now(), rounds, requested)
	if err != nil {
		if errors.Is(err, market.ErrRoundNotFound) {
			return market.Snapshot{}, fmt.Errorf("%w: round=%d", ErrNotFound, requested)
		}
		return market.Snapshot{}, fmt.Errorf("resolve market state: %w", err)
	}
	return snap, nil
}
