package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
	"github.com/kbrleague/fantasy-h2h/internal/domain/standings"
	"github.com/kbrleague/fantasy-h2h/internal/platform/cache"
)

const standingsCacheKey = "standings::table"

// StandingsService rebuilds and serves the head-to-head table. Rebuilds
// are full recomputations over finished rounds only.
type StandingsService struct {
	matchupRepo   matchup.Repository
	scoreRepo     settlement.Repository
	gameRepo      game.Repository
	standingsRepo standings.Repository
	store         *cache.Store
	now           func() time.Time
}

func NewStandingsService(
	matchupRepo matchup.Repository,
	scoreRepo settlement.Repository,
	gameRepo game.Repository,
	standingsRepo standings.Repository,
	store *cache.Store,
) *StandingsService {
	return &StandingsService{
		matchupRepo:   matchupRepo,
		scoreRepo:     scoreRepo,
		gameRepo:      gameRepo,
		standingsRepo: standingsRepo,
		store:         store,
		now:           time.Now,
	}
}

// WithClock overrides the round-finished clock. Tests only.
func (s *StandingsService) WithClock(now func() time.Time) *StandingsService {
	if now != nil {
		s.now = now
	}
	return s
}

// Rebuild recomputes the table from scratch and replaces the stored
// snapshot. Rounds count only once all their games kicked off long
// enough ago to be over.
func (s *StandingsService) Rebuild(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Rebuild")
	defer span.End()

	matchups, err := s.matchupRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}
	scores, err := s.scoreRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settled scores: %w", err)
	}
	games, err := s.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	now := s.now()
	table := standings.BuildTable(matchups, scores, func(round int) bool {
		return game.RoundFinishedBy(games, round, now)
	})

	if err := s.standingsRepo.Replace(ctx, table); err != nil {
		return nil, fmt.Errorf("replace standings: %w", err)
	}
	if s.store != nil {
		s.store.Delete(ctx, standingsCacheKey)
	}
	return table, nil
}

// Table returns the stored table, cached briefly since the endpoint is
// read-heavy between rebuilds.
func (s *StandingsService) Table(ctx context.Context) ([]standings.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Table")
	defer span.End()

	load := func(ctx context.Context) (any, error) {
		rows, err := s.standingsRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list standings: %w", err)
		}
		return rows, nil
	}

	if s.store == nil {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return value.([]standings.Row), nil
	}

	value, err := s.store.GetOrLoad(ctx, standingsCacheKey, load)
	if err != nil {
		return nil, err
	}
	return value.([]standings.Row), nil
}
