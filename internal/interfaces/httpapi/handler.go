package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/kbrleague/fantasy-h2h/internal/domain/lineup"
	"github.com/kbrleague/fantasy-h2h/internal/domain/market"
	"github.com/kbrleague/fantasy-h2h/internal/domain/points"
	"github.com/kbrleague/fantasy-h2h/internal/domain/settlement"
	"github.com/kbrleague/fantasy-h2h/internal/domain/standings"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
)

type Handler struct {
	lineupService     *usecase.LineupService
	pointsService     *usecase.PointsService
	ingestionService  *usecase.IngestionService
	settlementService *usecase.SettlementService
	standingsService  *usecase.StandingsService
	marketService     *usecase.MarketService
	resyncService     *usecase.ResyncService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	lineupService *usecase.LineupService,
	pointsService *usecase.PointsService,
	ingestionService *usecase.IngestionService,
	settlementService *usecase.SettlementService,
	standingsService *usecase.StandingsService,
	marketService *usecase.MarketService,
	resyncService *usecase.ResyncService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		lineupService:     lineupService,
		pointsService:     pointsService,
		ingestionService:  ingestionService,
		settlementService: settlementService,
		standingsService:  standingsService,
		marketService:     marketService,
		resyncService:     resyncService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, target any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func pathInt64(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

// queryInt parses an optional integer query parameter, returning zero
// when the parameter is absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

type lineupEntryRequest struct {
	PlayerID  int64  `json:"playerId" validate:"required,gt=0"`
	Role      string `json:"role" validate:"required,max=16"`
	Position  string `json:"position" validate:"required"`
	IsCaptain bool   `json:"isCaptain"`
}

type lineupUpsertRequest struct {
	Entries []lineupEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type ingestStatRowRequest struct {
	PlayerID int64          `json:"playerId" validate:"required,gt=0"`
	Position string         `json:"position"`
	Side     string         `json:"side" validate:"required,oneof=home away"`
	Stats    map[string]any `json:"stats" validate:"required"`
}

type cardCountRequest struct {
	Yellow float64 `json:"yellow" validate:"gte=0"`
	Red    float64 `json:"red" validate:"gte=0"`
}

type ingestGameStatsRequest struct {
	Rows      []ingestStatRowRequest     `json:"rows" validate:"required,min=1,dive"`
	Positions map[int64]string           `json:"positions,omitempty"`
	Cards     map[int64]cardCountRequest `json:"cards,omitempty" validate:"omitempty,dive"`
}

type settleRoundJobRequest struct {
	Round int `json:"round" validate:"required,gt=0"`
}

type recomputePointsJobRequest struct {
	Round  int   `json:"round" validate:"required_without=GameID,omitempty,gt=0"`
	GameID int64 `json:"game_id" validate:"required_without=Round,omitempty,gt=0"`
}

type resyncJobRequest struct {
	Rounds     []int `json:"rounds" validate:"required,min=1,dive,gt=0"`
	MaxWorkers int   `json:"max_workers" validate:"omitempty,gt=0"`
	DryRun     bool  `json:"dry_run"`
}

type lineupEntryDTO struct {
	PlayerID  int64  `json:"playerId"`
	Role      string `json:"role"`
	Position  string `json:"position"`
	IsCaptain bool   `json:"isCaptain"`
}

type lineupDTO struct {
	TeamID    string           `json:"teamId"`
	Round     int              `json:"round"`
	Entries   []lineupEntryDTO `json:"entries"`
	UpdatedAt string           `json:"updatedAt,omitempty"`
}

func lineupToDTO(item lineup.Lineup) lineupDTO {
	entries := make([]lineupEntryDTO, 0, len(item.Entries))
	for _, entry := range item.Entries {
		entries = append(entries, lineupEntryDTO{
			PlayerID:  entry.PlayerID,
			Role:      entry.Role.String(),
			Position:  string(entry.Position),
			IsCaptain: entry.IsCaptain,
		})
	}

	updatedAt := ""
	if !item.UpdatedAt.IsZero() {
		updatedAt = item.UpdatedAt.UTC().Format(time.RFC3339)
	}

	return lineupDTO{
		TeamID:    item.TeamID,
		Round:     item.Round,
		Entries:   entries,
		UpdatedAt: updatedAt,
	}
}

type pointsRecordDTO struct {
	GameID   int64   `json:"gameId"`
	PlayerID int64   `json:"playerId"`
	Points   float64 `json:"points"`
}

func pointsToDTOs(records []points.Record) []pointsRecordDTO {
	items := make([]pointsRecordDTO, 0, len(records))
	for _, record := range records {
		items = append(items, pointsRecordDTO{
			GameID:   record.GameID,
			PlayerID: record.PlayerID,
			Points:   record.Points,
		})
	}
	return items
}

type playerGamePointsDTO struct {
	GameID        int64   `json:"gameId"`
	PlayerID      int64   `json:"playerId"`
	Position      string  `json:"position"`
	MinutesPlayed float64 `json:"minutesPlayed"`
	Rating        float64 `json:"rating"`
	Goals         float64 `json:"goals"`
	Assists       float64 `json:"assists"`
	YellowCards   float64 `json:"yellowCards"`
	RedCards      float64 `json:"redCards"`
	Saves         float64 `json:"saves"`
	GoalsConceded float64 `json:"goalsConceded"`
	Points        float64 `json:"points"`
}

type scoreRowDTO struct {
	TeamID    string  `json:"teamId"`
	PlayerID  int64   `json:"playerId"`
	Round     int     `json:"round"`
	Points    float64 `json:"points"`
	IsActive  bool    `json:"isActive"`
	IsCaptain bool    `json:"isCaptain"`
}

func scoreRowsToDTOs(rows []settlement.ScoreRow) []scoreRowDTO {
	items := make([]scoreRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, scoreRowDTO{
			TeamID:    row.TeamID,
			PlayerID:  row.PlayerID,
			Round:     row.Round,
			Points:    row.Points,
			IsActive:  row.IsActive,
			IsCaptain: row.IsCaptain,
		})
	}
	return items
}

type teamRoundScoreDTO struct {
	TeamID string        `json:"teamId"`
	Round  int           `json:"round"`
	Total  float64       `json:"total"`
	Rows   []scoreRowDTO `json:"rows"`
}

type standingsRowDTO struct {
	Position      int     `json:"position"`
	TeamID        string  `json:"teamId"`
	Points        int     `json:"points"`
	GamesPlayed   int     `json:"gamesPlayed"`
	Wins          int     `json:"wins"`
	Draws         int     `json:"draws"`
	Losses        int     `json:"losses"`
	PointsFor     float64 `json:"pointsFor"`
	PointsAgainst float64 `json:"pointsAgainst"`
	EfficiencyPct float64 `json:"efficiencyPct"`
}

func standingsToDTOs(rows []standings.Row) []standingsRowDTO {
	items := make([]standingsRowDTO, 0, len(rows))
	for i, row := range rows {
		items = append(items, standingsRowDTO{
			Position:      i + 1,
			TeamID:        row.TeamID,
			Points:        row.Points,
			GamesPlayed:   row.GamesPlayed,
			Wins:          row.Wins,
			Draws:         row.Draws,
			Losses:        row.Losses,
			PointsFor:     row.PointsFor,
			PointsAgainst: row.PointsAgainst,
			EfficiencyPct: row.EfficiencyPct,
		})
	}
	return items
}

type marketStateDTO struct {
	State    string `json:"state"`
	Round    int    `json:"round,omitempty"`
	ClosesAt string `json:"closesAt,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

func marketSnapshotToDTO(snapshot market.Snapshot) marketStateDTO {
	closesAt := ""
	if !snapshot.ClosesAt.IsZero() {
		closesAt = snapshot.ClosesAt.UTC().Format(time.RFC3339)
	}
	return marketStateDTO{
		State:    string(snapshot.State),
		Round:    snapshot.Round,
		ClosesAt: closesAt,
		Deadline: snapshot.Deadline,
	}
}
