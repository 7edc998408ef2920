package httpapi

import (
	"net/http"
	"strings"

	"github.com/kbrleague/fantasy-h2h/internal/usecase"
)

func (h *Handler) GetLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	round, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.lineupService.Get(ctx, teamID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get lineup failed", "team_id", teamID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}

func (h *Handler) SaveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveLineup")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	round, err := pathInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req lineupUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.SaveLineupEntry, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, usecase.SaveLineupEntry{
			PlayerID:  entry.PlayerID,
			Role:      entry.Role,
			Position:  entry.Position,
			IsCaptain: entry.IsCaptain,
		})
	}

	item, err := h.lineupService.SaveLineup(ctx, usecase.SaveLineupInput{
		TeamID:  teamID,
		Round:   round,
		Entries: entries,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save lineup failed", "team_id", teamID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(item))
}
