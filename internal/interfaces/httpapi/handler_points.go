package httpapi

import "net/http"

func (h *Handler) ListRoundPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRoundPoints")
	defer span.End()

	round, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.pointsService.ListByRound(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list round points failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsToDTOs(records))
}

func (h *Handler) ListGamePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGamePoints")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	records, err := h.pointsService.ListByGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "list game points failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsToDTOs(records))
}

func (h *Handler) GetPlayerGamePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerGamePoints")
	defer span.End()

	gameID, err := pathInt64(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	playerID, err := pathInt64(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.pointsService.PlayerGameDetail(ctx, gameID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player game points failed", "game_id", gameID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerGamePointsDTO{
		GameID:        detail.Stat.GameID,
		PlayerID:      detail.Stat.PlayerID,
		Position:      string(detail.Stat.Position),
		MinutesPlayed: detail.Stat.MinutesPlayed,
		Rating:        detail.Stat.Rating,
		Goals:         detail.Stat.Goals,
		Assists:       detail.Stat.GoalAssist,
		YellowCards:   detail.Stat.YellowCards,
		RedCards:      detail.Stat.RedCards,
		Saves:         detail.Stat.Saves,
		GoalsConceded: detail.Stat.GoalsConceded,
		Points:        detail.Points,
	})
}
