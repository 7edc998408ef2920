package httpapi

import "net/http"

func (h *Handler) GetMarketState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarketState")
	defer span.End()

	round, err := queryInt(r, "round")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.marketService.State(ctx, round)
	if err != nil {
		h.logger.WarnContext(ctx, "get market state failed", "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, marketSnapshotToDTO(snapshot))
}
