package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/domain/schedule"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

// DefaultStartersCount is the counted eleven.
const DefaultStartersCount = 11

// LineupService validates and stores round lineups. A save is a full
// overwrite of the team's previous submission for that round.
type LineupService struct {
	lineupRepo    lineup.Repository
	playerRepo    player.Repository
	scheduleRepo  schedule.Repository
	startersCount int
	logger        *logging.Logger
	now           func() time.Time
}

func NewLineupService(lineupRepo lineup.Repository, playerRepo player.Repository, scheduleRepo schedule.Repository, startersCount int, logger *logging.Logger) *LineupService {
	if startersCount <= 0 {
		startersCount = DefaultStartersCount
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &LineupService{
		lineupRepo:    lineupRepo,
		playerRepo:    playerRepo,
		scheduleRepo:  scheduleRepo,
		startersCount: startersCount,
		logger:        logger,
		now:           time.Now,
	}
}

// WithClock overrides the lock clock. Tests only.
func (s *LineupService) WithClock(now func() time.Time) *LineupService {
	if now != nil {
		s.now = now
	}
	return s
}

// SaveLineupEntry is one slot as submitted, with the role still in its
// boundary encoding.
type SaveLineupEntry struct {
	PlayerID  int64
	Role      string
	Position  string
	IsCaptain bool
}

type SaveLineupInput struct {
	TeamID  string
	Round   int
	Entries []SaveLineupEntry
}

// SaveLineup decodes, validates and stores a team's round lineup.
func (s *LineupService) SaveLineup(ctx context.Context, input SaveLineupInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SaveLineup")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if input.Round <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}
	if len(input.Entries) == 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup entries are required", ErrInvalidInput)
	}

	if err := s.checkLock(ctx, input.Round); err != nil {
		return lineup.Lineup{}, err
	}

	l, err := s.decode(teamID, input)
	if err != nil {
		return lineup.Lineup{}, err
	}

	if err := s.checkPlayersExist(ctx, l); err != nil {
		return lineup.Lineup{}, err
	}

	l.UpdatedAt = s.now().UTC()
	if err := s.lineupRepo.Replace(ctx, l); err != nil {
		return lineup.Lineup{}, fmt.Errorf("replace lineup: %w", err)
	}

	s.logger.InfoContext(ctx, "lineup saved",
		"team_id", teamID, "round", input.Round, "entries", len(l.Entries))
	return l, nil
}

// Get returns a team's stored lineup for a round.
func (s *LineupService) Get(ctx context.Context, teamID string, round int) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Get")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	if round <= 0 {
		return lineup.Lineup{}, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}

	l, exists, err := s.lineupRepo.GetByTeamAndRound(ctx, teamID, round)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: team=%s round=%d", ErrNotFound, teamID, round)
	}
	return l, nil
}

// checkLock rejects saves after the round's lineup lock. Rounds absent
// from the schedule are not lockable.
func (s *LineupService) checkLock(ctx context.Context, round int) error {
	if s.scheduleRepo == nil {
		return nil
	}
	r, exists, err := s.scheduleRepo.GetByNumber(ctx, round)
	if err != nil {
		return fmt.Errorf("get schedule round: %w", err)
	}
	if !exists || r.LineupLockAt.IsZero() {
		return nil
	}
	if !s.now().Before(r.LineupLockAt) {
		return fmt.Errorf("%w: lineup for round %d is locked", ErrInvalidInput, round)
	}
	return nil
}

func (s *LineupService) decode(teamID string, input SaveLineupInput) (lineup.Lineup, error) {
	l := lineup.Lineup{
		TeamID:  teamID,
		Round:   input.Round,
		Entries: make([]lineup.Entry, 0, len(input.Entries)),
	}

	seen := make(map[int64]struct{}, len(input.Entries))
	benchPriorities := make(map[player.Position]map[int]struct{})
	starters, captains := 0, 0

	for _, raw := range input.Entries {
		if raw.PlayerID == 0 {
			return lineup.Lineup{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
		}
		if _, dup := seen[raw.PlayerID]; dup {
			return lineup.Lineup{}, fmt.Errorf("%w: duplicate player %d", ErrInvalidInput, raw.PlayerID)
		}
		seen[raw.PlayerID] = struct{}{}

		role, err := lineup.ParseRole(raw.Role)
		if err != nil {
			return lineup.Lineup{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		pos := player.Position(strings.ToUpper(strings.TrimSpace(raw.Position)))
		if _, ok := player.AllPositions[pos]; !ok {
			return lineup.Lineup{}, fmt.Errorf("%w: invalid position %q for player %d", ErrInvalidInput, raw.Position, raw.PlayerID)
		}

		if role.Starter {
			starters++
		} else {
			group, ok := benchPriorities[pos]
			if !ok {
				group = make(map[int]struct{})
				benchPriorities[pos] = group
			}
			if _, taken := group[role.Priority]; taken {
				return lineup.Lineup{}, fmt.Errorf("%w: duplicate bench priority %d for position %s", ErrInvalidInput, role.Priority, pos)
			}
			group[role.Priority] = struct{}{}
		}
		if raw.IsCaptain {
			captains++
		}

		l.Entries = append(l.Entries, lineup.Entry{
			TeamID:    teamID,
			Round:     input.Round,
			PlayerID:  raw.PlayerID,
			Role:      role,
			Position:  pos,
			IsCaptain: raw.IsCaptain,
		})
	}

	if starters != s.startersCount {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup needs exactly %d starters, got %d", ErrInvalidInput, s.startersCount, starters)
	}
	if captains > 1 {
		return lineup.Lineup{}, fmt.Errorf("%w: at most one captain is allowed", ErrInvalidInput)
	}

	return l, nil
}

func (s *LineupService) checkPlayersExist(ctx context.Context, l lineup.Lineup) error {
	if s.playerRepo == nil {
		return nil
	}
	ids := make([]int64, 0, len(l.Entries))
	for _, e := range l.Entries {
		ids = append(ids, e.PlayerID)
	}
	known, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("get players: %w", err)
	}
	if len(known) != len(ids) {
		byID := make(map[int64]struct{}, len(known))
		for _, p := range known {
			byID[p.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				return fmt.Errorf("%w: unknown player %d", ErrInvalidInput, id)
			}
		}
	}
	return nil
}
