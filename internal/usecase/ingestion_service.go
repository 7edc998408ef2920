package usecase

import (
	"context"
	"fmt"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

// IngestionService turns raw provider stat rows into normalized lines
// and point records. Re-ingesting a game replaces both wholesale.
type IngestionService struct {
	gameRepo   game.Repository
	statRepo   matchstat.Repository
	pointsRepo points.Repository
	logger     *logging.Logger
}

func NewIngestionService(gameRepo game.Repository, statRepo matchstat.Repository, pointsRepo points.Repository, logger *logging.Logger) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		gameRepo:   gameRepo,
		statRepo:   statRepo,
		pointsRepo: pointsRepo,
		logger:     logger,
	}
}

// IngestGameStatsInput is one game's raw rows plus the override maps
// sourced from the commentary feed and manual corrections.
type IngestGameStatsInput struct {
	GameID    int64
	Rows      []matchstat.RawRow
	Positions map[int64]player.Position
	Cards     map[int64]matchstat.CardCount
}

type IngestGameStatsResult struct {
	GameID       int64 `json:"game_id"`
	StatCount    int   `json:"stat_count"`
	PointCount   int   `json:"point_count"`
	UnknownCount int   `json:"unknown_position_count"`
}

// IngestGameStats normalizes and stores one game's stat rows, then
// recomputes the game's point records from the stored lines.
func (s *IngestionService) IngestGameStats(ctx context.Context, input IngestGameStatsInput) (IngestGameStatsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.IngestGameStats")
	defer span.End()

	if input.GameID == 0 {
		return IngestGameStatsResult{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	g, exists, err := s.gameRepo.GetByID(ctx, input.GameID)
	if err != nil {
		return IngestGameStatsResult{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return IngestGameStatsResult{}, fmt.Errorf("%w: game=%d", ErrNotFound, input.GameID)
	}

	ov := matchstat.Overrides{
		PositionByPlayer: input.Positions,
		CardsByPlayer:    input.Cards,
	}

	result := IngestGameStatsResult{GameID: input.GameID}
	stats := make([]matchstat.MatchStat, 0, len(input.Rows))
	for _, row := range input.Rows {
		row.GameID = input.GameID
		ms, known := matchstat.Normalize(row, g, ov)
		if !known {
			result.UnknownCount++
			s.logger.WarnContext(ctx, "unknown player position, defaulting to midfielder",
				"game_id", input.GameID, "player_id", row.PlayerID, "raw_position", row.Position)
		}
		stats = append(stats, ms)
	}

	if err := s.statRepo.ReplaceByGame(ctx, input.GameID, stats); err != nil {
		return IngestGameStatsResult{}, fmt.Errorf("replace game stats: %w", err)
	}
	result.StatCount = len(stats)

	records, err := s.recomputeGame(ctx, input.GameID, stats)
	if err != nil {
		return IngestGameStatsResult{}, err
	}
	result.PointCount = records

	return result, nil
}

// RecomputeGamePoints rebuilds point records from the stored stat
// lines of one game, e.g. after a scoring rule change.
func (s *IngestionService) RecomputeGamePoints(ctx context.Context, gameID int64) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecomputeGamePoints")
	defer span.End()

	if gameID == 0 {
		return 0, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	stats, err := s.statRepo.ListByGame(ctx, gameID)
	if err != nil {
		return 0, fmt.Errorf("list game stats: %w", err)
	}
	return s.recomputeGame(ctx, gameID, stats)
}

// RecomputeRoundPoints rebuilds point records for every game of a
// round. Games without stored lines end up with zero records, which is
// the correct replacement semantics.
func (s *IngestionService) RecomputeRoundPoints(ctx context.Context, round int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecomputeRoundPoints")
	defer span.End()

	if round <= 0 {
		return 0, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}

	games, err := s.gameRepo.ListByRound(ctx, round)
	if err != nil {
		return 0, fmt.Errorf("list round games: %w", err)
	}

	total := 0
	for _, g := range games {
		n, err := s.RecomputeGamePoints(ctx, g.ID)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

func (s *IngestionService) recomputeGame(ctx context.Context, gameID int64, stats []matchstat.MatchStat) (int, error) {
	records := make([]points.Record, 0, len(stats))
	for _, ms := range stats {
		records = append(records, points.Record{
			GameID:   gameID,
			PlayerID: ms.PlayerID,
			Points:   points.Calculate(ms),
		})
	}
	if err := s.pointsRepo.ReplaceByGame(ctx, gameID, records); err != nil {
		return 0, fmt.Errorf("replace game points: %w", err)
	}
	return len(records), nil
}
