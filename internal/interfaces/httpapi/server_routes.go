package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/market/state", handler.GetMarketState)
	mux.HandleFunc("GET /v1/rounds/{round}/points", handler.ListRoundPoints)
	mux.HandleFunc("GET /v1/rounds/{round}/scores", handler.ListRoundScores)
	mux.HandleFunc("GET /v1/games/{gameID}/points", handler.ListGamePoints)
	mux.HandleFunc("GET /v1/games/{gameID}/players/{playerID}/points", handler.GetPlayerGamePoints)
	mux.HandleFunc("GET /v1/teams/{teamID}/lineups/{round}", handler.GetLineup)
	mux.HandleFunc("PUT /v1/teams/{teamID}/lineups/{round}", handler.SaveLineup)
	mux.HandleFunc("GET /v1/teams/{teamID}/rounds/{round}/score", handler.GetTeamRoundScore)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/games/{gameID}/stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestGameStats)))
	mux.Handle("POST /v1/internal/jobs/settle-round", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSettleRoundJob)))
	mux.Handle("POST /v1/internal/jobs/rebuild-standings", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRebuildStandingsJob)))
	mux.Handle("POST /v1/internal/jobs/recompute-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputePointsJob)))
	mux.Handle("POST /v1/internal/jobs/resync", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResyncJob)))
}
