package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

// ExternalGameBundle is everything the provider knows about one game:
// its header, the raw stat rows, and the commentary-derived overrides.
type ExternalGameBundle struct {
	Game      game.Game
	Rows      []matchstat.RawRow
	Positions map[int64]player.Position
	Cards     map[int64]matchstat.CardCount
}

// GameStatProvider is the sports-data provider surface resync needs.
type GameStatProvider interface {
	FetchRoundGames(ctx context.Context, round int) ([]game.Game, error)
	FetchGameBundle(ctx context.Context, gameID int64) (ExternalGameBundle, error)
}

const (
	resyncStatusSuccess = "success"
	resyncStatusFailed  = "failed"
	resyncStatusSkipped = "skipped"

	defaultResyncWorkers = 4
	maxResyncWorkers     = 16
)

type ResyncInput struct {
	Rounds     []int
	MaxWorkers int
	// DryRun fetches and normalizes but skips all writes.
	DryRun bool
}

type ResyncResult struct {
	RoundCount   int                `json:"round_count"`
	TaskCount    int                `json:"task_count"`
	SuccessCount int                `json:"success_count"`
	FailedCount  int                `json:"failed_count"`
	SkippedCount int                `json:"skipped_count"`
	WorkerCount  int                `json:"worker_count"`
	Tasks        []ResyncTaskResult `json:"tasks"`
}

type ResyncTaskResult struct {
	Round      int    `json:"round"`
	GameID     int64  `json:"game_id"`
	Status     string `json:"status"`
	Records    int    `json:"records"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

// ResyncService refreshes rounds from the provider: game headers, stat
// lines, and point records, fanned out over a bounded worker pool.
type ResyncService struct {
	provider  GameStatProvider
	gameRepo  game.Repository
	ingestion *IngestionService
	logger    *logging.Logger
}

func NewResyncService(provider GameStatProvider, gameRepo game.Repository, ingestion *IngestionService, logger *logging.Logger) *ResyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ResyncService{
		provider:  provider,
		gameRepo:  gameRepo,
		ingestion: ingestion,
		logger:    logger,
	}
}

type resyncTask struct {
	round  int
	gameID int64
}

// Resync refreshes every game of the requested rounds.
func (s *ResyncService) Resync(ctx context.Context, input ResyncInput) (ResyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResyncService.Resync")
	defer span.End()

	if s.provider == nil {
		return ResyncResult{}, fmt.Errorf("%w: stat provider is not configured", ErrDependencyUnavailable)
	}
	if len(input.Rounds) == 0 {
		return ResyncResult{}, fmt.Errorf("%w: at least one round is required", ErrInvalidInput)
	}
	for _, round := range input.Rounds {
		if round <= 0 {
			return ResyncResult{}, fmt.Errorf("%w: round must be positive, got %d", ErrInvalidInput, round)
		}
	}

	tasks := make([]resyncTask, 0)
	for _, round := range input.Rounds {
		games, err := s.provider.FetchRoundGames(ctx, round)
		if err != nil {
			return ResyncResult{}, fmt.Errorf("fetch round %d games: %w", round, err)
		}
		if !input.DryRun && len(games) > 0 {
			if err := s.gameRepo.UpsertMany(ctx, games); err != nil {
				return ResyncResult{}, fmt.Errorf("upsert round %d games: %w", round, err)
			}
		}
		for _, g := range games {
			tasks = append(tasks, resyncTask{round: round, gameID: g.ID})
		}
	}

	workerCount := normalizeResyncWorkerCount(input.MaxWorkers, len(tasks))
	result := ResyncResult{
		RoundCount:  len(input.Rounds),
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]ResyncTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	results := make(chan ResyncTaskResult, len(tasks))
	var successCount, failedCount, skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ResyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := ResyncTaskResult{Round: task.round, GameID: task.gameID}
			row.Records, row.Status, row.Message = s.runTask(ctx, task, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case resyncStatusSuccess:
				successCount.Add(1)
			case resyncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}
			results <- row
		}); err != nil {
			workers.Done()
			return ResyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].Round != result.Tasks[j].Round {
			return result.Tasks[i].Round < result.Tasks[j].Round
		}
		return result.Tasks[i].GameID < result.Tasks[j].GameID
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "resync finished",
		"rounds", len(input.Rounds), "tasks", result.TaskCount,
		"success", result.SuccessCount, "failed", result.FailedCount,
		"skipped", result.SkippedCount)
	return result, nil
}

func (s *ResyncService) runTask(ctx context.Context, task resyncTask, dryRun bool) (records int, status, message string) {
	bundle, err := s.provider.FetchGameBundle(ctx, task.gameID)
	if err != nil {
		return 0, resyncStatusFailed, err.Error()
	}
	if len(bundle.Rows) == 0 {
		return 0, resyncStatusSkipped, "no stat rows yet"
	}
	if dryRun {
		return len(bundle.Rows), resyncStatusSuccess, ""
	}

	if err := s.gameRepo.UpsertMany(ctx, []game.Game{bundle.Game}); err != nil {
		return 0, resyncStatusFailed, err.Error()
	}
	ingested, err := s.ingestion.IngestGameStats(ctx, IngestGameStatsInput{
		GameID:    task.gameID,
		Rows:      bundle.Rows,
		Positions: bundle.Positions,
		Cards:     bundle.Cards,
	})
	if err != nil {
		return 0, resyncStatusFailed, err.Error()
	}
	return ingested.StatCount, resyncStatusSuccess, ""
}

func normalizeResyncWorkerCount(requested, taskCount int) int {
	count := requested
	if count <= 0 {
		count = defaultResyncWorkers
	}
	if count > maxResyncWorkers {
		count = maxResyncWorkers
	}
	if taskCount > 0 && count > taskCount {
		count = taskCount
	}
	if count < 1 {
		count = 1
	}
	return count
}
