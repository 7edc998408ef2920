package httpapi

import (
	"fmt"
	"net/http"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/domain/player"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
)

func (h *Handler) IngestGameStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGameStats")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req ingestGameStatsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows := make([]matchstat.RawRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, matchstat.RawRow{
			GameID:   gameID,
			PlayerID: row.PlayerID,
			Position: row.Position,
			Side:     game.Side(row.Side),
			Stats:    row.Stats,
		})
	}

	positions := make(map[int64]player.Position, len(req.Positions))
	for playerID, raw := range req.Positions {
		pos, ok := player.ParsePosition(raw)
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: unknown position override %q for player %d", usecase.ErrInvalidInput, raw, playerID))
			return
		}
		positions[playerID] = pos
	}

	cards := make(map[int64]matchstat.CardCount, len(req.Cards))
	for playerID, card := range req.Cards {
		cards[playerID] = matchstat.CardCount{Yellow: card.Yellow, Red: card.Red}
	}

	result, err := h.ingestionService.IngestGameStats(ctx, usecase.IngestGameStatsInput{
		GameID:    gameID,
		Rows:      rows,
		Positions: positions,
		Cards:     cards,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "ingest game stats failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunRecomputePointsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputePointsJob")
	defer span.End()

	var req recomputePointsJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var (
		count int
		err   error
	)
	if req.GameID != 0 {
		count, err = h.ingestionService.RecomputeGamePoints(ctx, req.GameID)
	} else {
		count, err = h.ingestionService.RecomputeRoundPoints(ctx, req.Round)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute points job failed", "round", req.Round, "game_id", req.GameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"point_count": count})
}

func (h *Handler) RunResyncJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunResyncJob")
	defer span.End()

	var req resyncJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.resyncService.Resync(ctx, usecase.ResyncInput{
		Rounds:     req.Rounds,
		MaxWorkers: req.MaxWorkers,
		DryRun:     req.DryRun,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "resync job failed", "rounds", req.Rounds, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
