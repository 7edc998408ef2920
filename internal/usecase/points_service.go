package usecase

import (
	"context"
	"fmt"

	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
)

// PointsService serves computed point records and single-line detail.
type PointsService struct {
	pointsRepo points.Repository
	statRepo   matchstat.Repository
}

func NewPointsService(pointsRepo points.Repository, statRepo matchstat.Repository) *PointsService {
	return &PointsService{
		pointsRepo: pointsRepo,
		statRepo:   statRepo,
	}
}

func (s *PointsService) ListByRound(ctx context.Context, round int) ([]points.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListByRound")
	defer span.End()

	if round <= 0 {
		return nil, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}
	records, err := s.pointsRepo.ListByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("list round points: %w", err)
	}
	return records, nil
}

func (s *PointsService) ListByGame(ctx context.Context, gameID int64) ([]points.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.ListByGame")
	defer span.End()

	if gameID == 0 {
		return nil, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	records, err := s.pointsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("list game points: %w", err)
	}
	return records, nil
}

// PlayerGameDetail pairs a stored stat line with its recomputed value,
// useful when a manager disputes a score.
type PlayerGameDetail struct {
	Stat   matchstat.MatchStat `json:"stat"`
	Points float64             `json:"points"`
}

func (s *PointsService) PlayerGameDetail(ctx context.Context, gameID, playerID int64) (PlayerGameDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.PlayerGameDetail")
	defer span.End()

	if gameID == 0 || playerID == 0 {
		return PlayerGameDetail{}, fmt.Errorf("%w: game id and player id are required", ErrInvalidInput)
	}
	ms, exists, err := s.statRepo.GetByGameAndPlayer(ctx, gameID, playerID)
	if err != nil {
		return PlayerGameDetail{}, fmt.Errorf("get stat line: %w", err)
	}
	if !exists {
		return PlayerGameDetail{}, fmt.Errorf("%w: game=%d player=%d", ErrNotFound, gameID, playerID)
	}
	return PlayerGameDetail{Stat: ms, Points: points.Calculate(ms)}, nil
}
