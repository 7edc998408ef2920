package sofascore

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/domain/matchstat"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
	"github.com/kbrleague/fantasy-h2h/internal/platform/resilience"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

const (
	defaultBaseURL   = "https://api.sofascore.com/api/v1"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

	commentTypeYellowCard = "yellowCard"
	commentTypeRedCard    = "redCard"
)

var errSofascoreTransient = crerr.New("sofascore transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	TournamentID   int64
	SeasonID       int64
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads match data from the public sofascore API: round event
// lists, event details with scores, per-player lineup statistics, and
// the commentary feed that carries the authoritative card record.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	tournamentID   int64
	seasonID       int64
	userAgent      string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		tournamentID:   cfg.TournamentID,
		seasonID:       cfg.SeasonID,
		userAgent:      userAgent,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchRoundGames lists the configured tournament's events for one
// round, mapped to game headers.
func (c *Client) FetchRoundGames(ctx context.Context, round int) ([]game.Game, error) {
	if round <= 0 {
		return nil, fmt.Errorf("%w: round must be positive", usecase.ErrInvalidInput)
	}
	if c.tournamentID <= 0 || c.seasonID <= 0 {
		return nil, fmt.Errorf("%w: sofascore tournament and season ids are not configured", usecase.ErrDependencyUnavailable)
	}

	path := fmt.Sprintf("/unique-tournament/%d/season/%d/events/round/%d", c.tournamentID, c.seasonID, round)
	var envelope roundEventsEnvelope
	if err := c.doJSON(ctx, path, &envelope); err != nil {
		return nil, fmt.Errorf("fetch round %d events: %w", round, err)
	}

	games := make([]game.Game, 0, len(envelope.Events))
	for _, event := range envelope.Events {
		if event.ID <= 0 {
			continue
		}
		mapped := event.toGame()
		if mapped.Round == 0 {
			mapped.Round = round
		}
		games = append(games, mapped)
	}
	return games, nil
}

// FetchGameBundle collects everything one game needs for ingestion.
// The event detail, lineups, and comments endpoints are fetched
// concurrently; a missing comments feed degrades to box-score cards
// rather than failing the game.
func (c *Client) FetchGameBundle(ctx context.Context, gameID int64) (usecase.ExternalGameBundle, error) {
	if gameID <= 0 {
		return usecase.ExternalGameBundle{}, fmt.Errorf("%w: game id must be positive", usecase.ErrInvalidInput)
	}

	var (
		detail   eventDetailEnvelope
		lineups  lineupsEnvelope
		comments commentsEnvelope
	)

	grp := pool.New().WithContext(ctx).WithCancelOnError()
	grp.Go(func(ctx context.Context) error {
		if err := c.doJSON(ctx, fmt.Sprintf("/event/%d", gameID), &detail); err != nil {
			return fmt.Errorf("fetch event detail game_id=%d: %w", gameID, err)
		}
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		if err := c.doJSON(ctx, fmt.Sprintf("/event/%d/lineups", gameID), &lineups); err != nil {
			return fmt.Errorf("fetch event lineups game_id=%d: %w", gameID, err)
		}
		return nil
	})
	grp.Go(func(ctx context.Context) error {
		if err := c.doJSON(ctx, fmt.Sprintf("/event/%d/comments", gameID), &comments); err != nil {
			// Commentary appears late for some games. Cards then come
			// from the lineup box score.
			c.logger.WarnContext(ctx, "sofascore comments unavailable", "game_id", gameID, "error", err)
		}
		return nil
	})
	if err := grp.Wait(); err != nil {
		return usecase.ExternalGameBundle{}, err
	}

	bundle := usecase.ExternalGameBundle{
		Game:  detail.Event.toGame(),
		Cards: parseCardsFromComments(comments.Comments),
	}
	bundle.Game.ID = gameID
	bundle.Rows = append(bundle.Rows, lineupRows(gameID, game.SideHome, lineups.Home.Players)...)
	bundle.Rows = append(bundle.Rows, lineupRows(gameID, game.SideAway, lineups.Away.Players)...)
	return bundle, nil
}

type roundEventsEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventDetailEnvelope struct {
	Event eventPayload `json:"event"`
}

type eventPayload struct {
	ID             int64        `json:"id"`
	StartTimestamp int64        `json:"startTimestamp"`
	RoundInfo      roundInfo    `json:"roundInfo"`
	Status         eventStatus  `json:"status"`
	HomeTeam       teamPayload  `json:"homeTeam"`
	AwayTeam       teamPayload  `json:"awayTeam"`
	HomeScore      scorePayload `json:"homeScore"`
	AwayScore      scorePayload `json:"awayScore"`
}

type roundInfo struct {
	Round int `json:"round"`
}

type eventStatus struct {
	Type string `json:"type"`
}

type teamPayload struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type scorePayload struct {
	Current *int `json:"current"`
}

func (e eventPayload) toGame() game.Game {
	g := game.Game{
		ID:         e.ID,
		Round:      e.RoundInfo.Round,
		HomeClub:   e.HomeTeam.Name,
		AwayClub:   e.AwayTeam.Name,
		HomeClubID: e.HomeTeam.ID,
		AwayClubID: e.AwayTeam.ID,
		HomeScore:  e.HomeScore.Current,
		AwayScore:  e.AwayScore.Current,
		Status:     mapEventStatus(e.Status.Type),
	}
	if e.StartTimestamp > 0 {
		g.KickoffAt = time.Unix(e.StartTimestamp, 0).UTC()
	}
	return g
}

func mapEventStatus(statusType string) string {
	switch strings.ToLower(strings.TrimSpace(statusType)) {
	case "finished":
		return game.StatusFinished
	case "inprogress":
		return game.StatusLive
	case "notstarted", "":
		return game.StatusScheduled
	case "postponed":
		return game.StatusPostponed
	case "canceled", "cancelled":
		return game.StatusCancelled
	default:
		return game.NormalizeStatus(statusType)
	}
}

type lineupsEnvelope struct {
	Home lineupSide `json:"home"`
	Away lineupSide `json:"away"`
}

type lineupSide struct {
	Players []lineupPlayer `json:"players"`
}

type lineupPlayer struct {
	Player     lineupPlayerInfo `json:"player"`
	Statistics map[string]any   `json:"statistics"`
}

type lineupPlayerInfo struct {
	ID       int64  `json:"id"`
	Position string `json:"position"`
}

func lineupRows(gameID int64, side game.Side, players []lineupPlayer) []matchstat.RawRow {
	rows := make([]matchstat.RawRow, 0, len(players))
	for _, entry := range players {
		if entry.Player.ID <= 0 {
			continue
		}
		stats := entry.Statistics
		if stats == nil {
			stats = map[string]any{}
		}
		rows = append(rows, matchstat.RawRow{
			GameID:   gameID,
			PlayerID: entry.Player.ID,
			Position: entry.Player.Position,
			Side:     side,
			Stats:    stats,
		})
	}
	return rows
}

type commentsEnvelope struct {
	Comments []commentPayload `json:"comments"`
}

type commentPayload struct {
	Type   string           `json:"type"`
	Player lineupPlayerInfo `json:"player"`
}

// parseCardsFromComments tallies cards per player from the commentary
// feed, which records cards the box score sometimes misses.
func parseCardsFromComments(comments []commentPayload) map[int64]matchstat.CardCount {
	if len(comments) == 0 {
		return nil
	}
	cards := make(map[int64]matchstat.CardCount)
	for _, comment := range comments {
		if comment.Player.ID <= 0 {
			continue
		}
		switch comment.Type {
		case commentTypeYellowCard:
			count := cards[comment.Player.ID]
			count.Yellow++
			cards[comment.Player.ID] = count
		case commentTypeRedCard:
			count := cards[comment.Player.ID]
			count.Red++
			cards[comment.Player.ID] = count
		}
	}
	if len(cards) == 0 {
		return nil
	}
	return cards
}

func (c *Client) doJSON(ctx context.Context, path string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "sofascore circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: sofascore is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := c.baseURL + path
	out, err, _ := c.flight.Do(path, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errSofascoreTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode sofascore payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errSofascoreTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errSofascoreTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: sofascore status=%d body=%s", errSofascoreTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("sofascore status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("sofascore request failed")
	}
	c.logger.WarnContext(ctx, "sofascore request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
