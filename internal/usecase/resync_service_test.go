package usecase

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/infrastructure/repository/memory"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

type stubProvider struct {
	games   map[int][]game.Game
	bundles map[int64]ExternalGameBundle
	failOn  map[int64]bool
	fetches atomic.Int32
}

func (p *stubProvider) FetchRoundGames(_ context.Context, round int) ([]game.Game, error) {
	return p.games[round], nil
}

func (p *stubProvider) FetchGameBundle(_ context.Context, gameID int64) (ExternalGameBundle, error) {
	p.fetches.Add(1)
	if p.failOn[gameID] {
		return ExternalGameBundle{}, fmt.Errorf("provider unavailable for game %d", gameID)
	}
	return p.bundles[gameID], nil
}

func newResyncFixture(t *testing.T) (*ResyncService, *stubProvider, *memory.MatchStatRepository) {
	t.Helper()

	g1 := game.Game{ID: 9001, Round: 1, HomeClubID: 1, AwayClubID: 2, KickoffAt: time.Now().Add(-4 * time.Hour), Status: game.StatusFinished}
	g2 := game.Game{ID: 9002, Round: 1, HomeClubID: 3, AwayClubID: 4, KickoffAt: time.Now().Add(-4 * time.Hour), Status: game.StatusFinished}

	provider := &stubProvider{
		games: map[int][]game.Game{1: {g1, g2}},
		bundles: map[int64]ExternalGameBundle{
			9001: {
				Game: g1,
				Rows: []matchstat.RawRow{
					{PlayerID: 11, Position: "M", Side: game.SideHome, Stats: map[string]any{"minutesPlayed": 90}},
					{PlayerID: 12, Position: "F", Side: game.SideAway, Stats: map[string]any{"minutesPlayed": 30}},
				},
			},
			9002: {Game: g2}, // no rows yet
		},
		failOn: map[int64]bool{},
	}

	games := memory.NewGameRepository(nil)
	stats := memory.NewMatchStatRepository(games)
	pts := memory.NewPointsRepository(games)
	ingestion := NewIngestionService(games, stats, pts, logging.NewNop())
	svc := NewResyncService(provider, games, ingestion, logging.NewNop())
	return svc, provider, stats
}

func TestResyncRound(t *testing.T) {
	t.Parallel()

	svc, provider, stats := newResyncFixture(t)
	ctx := context.Background()

	result, err := svc.Resync(ctx, ResyncInput{Rounds: []int{1}, MaxWorkers: 2})
	require.NoError(t, err)
	require.Equal(t, 2, result.TaskCount)
	require.Equal(t, 1, result.SuccessCount)
	require.Equal(t, 1, result.SkippedCount)
	require.Equal(t, 0, result.FailedCount)
	require.EqualValues(t, 2, provider.fetches.Load())

	rows, err := stats.ListByGame(ctx, 9001)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Deterministic task ordering regardless of worker interleaving.
	require.Equal(t, int64(9001), result.Tasks[0].GameID)
	require.Equal(t, int64(9002), result.Tasks[1].GameID)
}

func TestResyncReportsFailedTasks(t *testing.T) {
	t.Parallel()

	svc, provider, _ := newResyncFixture(t)
	provider.failOn[9001] = true

	result, err := svc.Resync(context.Background(), ResyncInput{Rounds: []int{1}})
	require.NoError(t, err)
	require.Equal(t, 1, result.FailedCount)
	require.Equal(t, 1, result.SkippedCount)
	require.NotEmpty(t, result.Tasks[0].Message)
}

func TestResyncDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	svc, _, stats := newResyncFixture(t)
	ctx := context.Background()

	result, err := svc.Resync(ctx, ResyncInput{Rounds: []int{1}, DryRun: true})
	require.NoError(t, err)
	require.Equal(t, 1, result.SuccessCount)

	rows, err := stats.ListByGame(ctx, 9001)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestResyncValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newResyncFixture(t)
	_, err := svc.Resync(context.Background(), ResyncInput{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Resync(context.Background(), ResyncInput{Rounds: []int{-1}})
	require.ErrorIs(t, err, ErrInvalidInput)

	noProvider := NewResyncService(nil, memory.NewGameRepository(nil), nil, logging.NewNop())
	_, err = noProvider.Resync(context.Background(), ResyncInput{Rounds: []int{1}})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
