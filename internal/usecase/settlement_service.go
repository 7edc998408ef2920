package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

// RoundNotifier publishes settled round summaries to an external
// consumer. Delivery is best effort; settlement never fails on it.
type RoundNotifier interface {
	PublishRoundSettled(ctx context.Context, summary RoundSettlementSummary) error
}

// SettlementService resolves every team's round lineup into settled
// score rows: bench substitutions, captain multiplier, replace writes.
type SettlementService struct {
	lineupRepo lineup.Repository
	gameRepo   game.Repository
	statRepo   matchstat.Repository
	pointsRepo points.Repository
	playerRepo player.Repository
	scoreRepo  settlement.Repository
	notifier   RoundNotifier
	logger     *logging.Logger
	now        func() time.Time
}

func NewSettlementService(
	lineupRepo lineup.Repository,
	gameRepo game.Repository,
	statRepo matchstat.Repository,
	pointsRepo points.Repository,
	playerRepo player.Repository,
	scoreRepo settlement.Repository,
	notifier RoundNotifier,
	logger *logging.Logger,
) *SettlementService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SettlementService{
		lineupRepo: lineupRepo,
		gameRepo:   gameRepo,
		statRepo:   statRepo,
		pointsRepo: pointsRepo,
		playerRepo: playerRepo,
		scoreRepo:  scoreRepo,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the settlement clock. Tests only.
func (s *SettlementService) WithClock(now func() time.Time) *SettlementService {
	if now != nil {
		s.now = now
	}
	return s
}

type TeamRoundResult struct {
	TeamID string                `json:"team_id"`
	Total  float64               `json:"total"`
	Rows   []settlement.ScoreRow `json:"rows"`
}

type RoundSettlementSummary struct {
	Round     int               `json:"round"`
	TeamCount int               `json:"team_count"`
	Teams     []TeamRoundResult `json:"teams"`
	SettledAt time.Time         `json:"settled_at"`
}

// SettleRound recomputes settlement for every lineup of the round and
// replaces the stored score rows. Safe to re-invoke at any time: equal
// inputs produce identical rows.
func (s *SettlementService) SettleRound(ctx context.Context, round int) (RoundSettlementSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.SettleRound")
	defer span.End()

	if round <= 0 {
		return RoundSettlementSummary{}, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}

	lineups, err := s.lineupRepo.ListByRound(ctx, round)
	if err != nil {
		return RoundSettlementSummary{}, fmt.Errorf("list round lineups: %w", err)
	}

	snapshot, err := s.roundSnapshot(ctx, round)
	if err != nil {
		return RoundSettlementSummary{}, err
	}

	sort.Slice(lineups, func(i, j int) bool { return lineups[i].TeamID < lineups[j].TeamID })

	summary := RoundSettlementSummary{
		Round:     round,
		TeamCount: len(lineups),
		SettledAt: s.now().UTC(),
	}
	for _, l := range lineups {
		rows := settlement.Resolve(settlement.Input{
			Lineup:         l,
			StatusByPlayer: snapshot.statusByPlayer,
			ClubByPlayer:   snapshot.clubByPlayer,
			ClubFinished:   snapshot.clubFinished,
			PointsByPlayer: snapshot.pointsByPlayer,
		})
		if err := s.scoreRepo.ReplaceByTeamAndRound(ctx, l.TeamID, round, rows); err != nil {
			return RoundSettlementSummary{}, fmt.Errorf("replace settled scores: team=%s: %w", l.TeamID, err)
		}
		summary.Teams = append(summary.Teams, TeamRoundResult{
			TeamID: l.TeamID,
			Total:  settlement.TeamTotal(rows),
			Rows:   rows,
		})
	}

	if s.notifier != nil && len(summary.Teams) > 0 {
		if err := s.notifier.PublishRoundSettled(ctx, summary); err != nil {
			s.logger.WarnContext(ctx, "settlement webhook failed", "round", round, "error", err)
		}
	}

	return summary, nil
}

// ListRound returns the stored settled rows for a round.
func (s *SettlementService) ListRound(ctx context.Context, round int) ([]settlement.ScoreRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.ListRound")
	defer span.End()

	if round <= 0 {
		return nil, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}
	rows, err := s.scoreRepo.ListByRound(ctx, round)
	if err != nil {
		return nil, fmt.Errorf("list settled scores: %w", err)
	}
	return rows, nil
}

// TeamRound returns one team's stored rows plus the counted total.
func (s *SettlementService) TeamRound(ctx context.Context, teamID string, round int) (TeamRoundResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SettlementService.TeamRound")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return TeamRoundResult{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	rows, err := s.ListRound(ctx, round)
	if err != nil {
		return TeamRoundResult{}, err
	}

	result := TeamRoundResult{TeamID: teamID}
	for _, r := range rows {
		if r.TeamID == teamID {
			result.Rows = append(result.Rows, r)
		}
	}
	if len(result.Rows) == 0 {
		return TeamRoundResult{}, fmt.Errorf("%w: team=%s round=%d", ErrNotFound, teamID, round)
	}
	result.Total = settlement.TeamTotal(result.Rows)
	return result, nil
}

type roundSnapshot struct {
	statusByPlayer map[int64]settlement.PlayStatus
	clubByPlayer   map[int64]int64
	clubFinished   map[int64]bool
	pointsByPlayer map[int64]float64
}

// roundSnapshot gathers everything Resolve needs into plain lookups so
// the domain resolution stays pure.
func (s *SettlementService) roundSnapshot(ctx context.Context, round int) (roundSnapshot, error) {
	now := s.now()

	games, err := s.gameRepo.ListByRound(ctx, round)
	if err != nil {
		return roundSnapshot{}, fmt.Errorf("list round games: %w", err)
	}
	gameByID := make(map[int64]game.Game, len(games))
	clubFinished := make(map[int64]bool, len(games)*2)
	for _, g := range games {
		gameByID[g.ID] = g
		done := g.FinishedBy(now)
		clubFinished[g.HomeClubID] = done
		clubFinished[g.AwayClubID] = done
	}

	stats, err := s.statRepo.ListByRound(ctx, round)
	if err != nil {
		return roundSnapshot{}, fmt.Errorf("list round stats: %w", err)
	}
	statusByPlayer := make(map[int64]settlement.PlayStatus, len(stats))
	for _, ms := range stats {
		g, ok := gameByID[ms.GameID]
		if !ok {
			continue
		}
		statusByPlayer[ms.PlayerID] = settlement.PlayStatus{
			Known:    true,
			Finished: g.FinishedBy(now),
			Minutes:  ms.MinutesPlayed,
		}
	}

	records, err := s.pointsRepo.ListByRound(ctx, round)
	if err != nil {
		return roundSnapshot{}, fmt.Errorf("list round points: %w", err)
	}
	pointsByPlayer := make(map[int64]float64, len(records))
	for _, r := range records {
		pointsByPlayer[r.PlayerID] = r.Points
	}

	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return roundSnapshot{}, fmt.Errorf("list players: %w", err)
	}
	clubByPlayer := make(map[int64]int64, len(players))
	for _, p := range players {
		clubByPlayer[p.ID] = p.ClubID
	}

	return roundSnapshot{
		statusByPlayer: statusByPlayer,
		clubByPlayer:   clubByPlayer,
		clubFinished:   clubFinished,
		pointsByPlayer: pointsByPlayer,
	}, nil
}
