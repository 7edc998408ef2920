package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListRoundScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundScores")
	defer span.End()

	round, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.settlementService.ListRound(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list round scores failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreRowsToDTOs(rows))
}

func (h *Handler) GetTeamRoundScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamRoundScore")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	round, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.settlementService.TeamRound(ctx, teamID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get team round score failed", "team_id", teamID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamRoundScoreDTO{
		TeamID: result.TeamID,
		Round:  round,
		Total:  result.Total,
		Rows:   scoreRowsToDTOs(result.Rows),
	})
}

func (h *Handler) RunSettleRoundJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSettleRoundJob")
	defer span.End()

	var req settleRoundJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.settlementService.SettleRound(ctx, req.Round)
	if err != nil {
		h.logger.ErrorContext(ctx, "settle round job failed", "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, summary)
}
