package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kbrleague/fantasy-h2h/external/sofascore"
	"github.com/kbrleague/fantasy-h2h/internal/config"
	"github.com/kbrleague/fantasy-h2h/internal/infrastructure/notify"
	"github.com/kbrleague/fantasy-h2h/internal/infrastructure/repository/postgres"
	"github.com/kbrleague/fantasy-h2h/internal/interfaces/httpapi"
	"github.com/kbrleague/fantasy-h2h/internal/platform/cache"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
	"github.com/kbrleague/fantasy-h2h/internal/platform/resilience"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
)

// NewHTTPServer assembles the full service: postgres repositories,
// usecase services, provider client, settlement webhook, and the HTTP
// router. The returned cleanup closes the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	db, err := openDatabase(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	server, err := buildHTTPServer(cfg, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return server, db.Close, nil
}

func buildHTTPServer(cfg config.Config, logger *logging.Logger, db *sqlx.DB) (*http.Server, error) {
	playerRepo := postgres.NewPlayerRepository(db)
	gameRepo := postgres.NewGameRepository(db)
	statRepo := postgres.NewMatchStatRepository(db)
	pointsRepo := postgres.NewPointsRepository(db)
	lineupRepo := postgres.NewLineupRepository(db)
	scoreRepo := postgres.NewSettlementRepository(db)
	matchupRepo := postgres.NewMatchupRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	standingsRepo := postgres.NewStandingsRepository(db)

	var notifier usecase.RoundNotifier
	if cfg.WebhookEnabled {
		notifier = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			URL:     cfg.WebhookURL,
			Secret:  cfg.WebhookSecret,
			Retries: cfg.WebhookRetries,
			Timeout: cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMax,
			},
		}, logger)
	}

	var standingsCache *cache.Store
	if cfg.CacheEnabled {
		standingsCache = cache.NewStore(cfg.CacheTTL)
	}

	provider := sofascore.NewClient(sofascore.ClientConfig{
		BaseURL:      cfg.SofascoreBaseURL,
		TournamentID: cfg.SofascoreTournamentID,
		SeasonID:     cfg.SofascoreSeasonID,
		Timeout:      cfg.SofascoreTimeout,
		MaxRetries:   cfg.SofascoreMaxRetries,
		Logger:       logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SofascoreCircuitEnabled,
			FailureThreshold: cfg.SofascoreCircuitFailureCount,
			OpenTimeout:      cfg.SofascoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SofascoreCircuitHalfOpenMax,
		},
	})

	lineupSvc := usecase.NewLineupService(lineupRepo, playerRepo, scheduleRepo, cfg.StartersCount, logger)
	pointsSvc := usecase.NewPointsService(pointsRepo, statRepo)
	ingestionSvc := usecase.NewIngestionService(gameRepo, statRepo, pointsRepo, logger)
	settlementSvc := usecase.NewSettlementService(lineupRepo, gameRepo, statRepo, pointsRepo, playerRepo, scoreRepo, notifier, logger)
	standingsSvc := usecase.NewStandingsService(matchupRepo, scoreRepo, gameRepo, standingsRepo, standingsCache)
	marketSvc := usecase.NewMarketService(scheduleRepo)
	resyncSvc := usecase.NewResyncService(provider, gameRepo, ingestionSvc, logger)

	handler := httpapi.NewHandler(lineupSvc, pointsSvc, ingestionSvc, settlementSvc, standingsSvc, marketSvc, resyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
