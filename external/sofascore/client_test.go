package sofascore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbrleague/fantasy-h2h/internal/domain/game"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		BaseURL:      srv.URL,
		TournamentID: 140,
		SeasonID:     2026,
		Timeout:      5 * time.Second,
		Logger:       logging.NewNop(),
	})
	return client, srv
}

func TestFetchRoundGamesMapsEvents(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"events": [
				{
					"id": 9001,
					"startTimestamp": 1772394000,
					"roundInfo": {"round": 3},
					"status": {"type": "finished"},
					"homeTeam": {"id": 11, "name": "Azuis"},
					"awayTeam": {"id": 12, "name": "Rubros"},
					"homeScore": {"current": 2},
					"awayScore": {"current": 1}
				},
				{"id": 0}
			]
		}`))
	}))

	games, err := client.FetchRoundGames(context.Background(), 3)
	if err != nil {
		t.Fatalf("FetchRoundGames() error = %v", err)
	}
	if gotPath != "/unique-tournament/140/season/2026/events/round/3" {
		t.Fatalf("request path = %s", gotPath)
	}
	if len(games) != 1 {
		t.Fatalf("expected one game, got=%d", len(games))
	}

	g := games[0]
	if g.ID != 9001 || g.Round != 3 {
		t.Fatalf("game header = %+v", g)
	}
	if g.Status != game.StatusFinished {
		t.Fatalf("status = %s, want %s", g.Status, game.StatusFinished)
	}
	if g.HomeClub != "Azuis" || g.AwayClub != "Rubros" {
		t.Fatalf("clubs = %s vs %s", g.HomeClub, g.AwayClub)
	}
	if g.HomeScore == nil || *g.HomeScore != 2 || g.AwayScore == nil || *g.AwayScore != 1 {
		t.Fatalf("scores = %v / %v", g.HomeScore, g.AwayScore)
	}
	if g.KickoffAt.IsZero() {
		t.Fatal("kickoff not parsed")
	}
}

func TestFetchRoundGamesRejectsInvalidRound(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{TournamentID: 140, SeasonID: 2026, Logger: logging.NewNop()})
	if _, err := client.FetchRoundGames(context.Background(), 0); err == nil {
		t.Fatal("expected error for round 0")
	}
}

func TestFetchGameBundleCombinesSubFetches(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/event/9001", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"event": {
				"id": 9001,
				"roundInfo": {"round": 3},
				"status": {"type": "inprogress"},
				"homeTeam": {"id": 11, "name": "Azuis"},
				"awayTeam": {"id": 12, "name": "Rubros"},
				"homeScore": {"current": 1},
				"awayScore": {"current": 0}
			}
		}`))
	})
	mux.HandleFunc("/event/9001/lineups", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"home": {"players": [
				{"player": {"id": 101, "position": "M"}, "statistics": {"minutesPlayed": 90, "rating": 7.4}},
				{"player": {"id": 0}}
			]},
			"away": {"players": [
				{"player": {"id": 201, "position": "G"}, "statistics": {"saves": 4}}
			]}
		}`))
	})
	mux.HandleFunc("/event/9001/comments", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"comments": [
				{"type": "yellowCard", "player": {"id": 101}},
				{"type": "yellowCard", "player": {"id": 101}},
				{"type": "redCard", "player": {"id": 101}},
				{"type": "goal", "player": {"id": 201}}
			]
		}`))
	})

	client, _ := newTestClient(t, mux)

	bundle, err := client.FetchGameBundle(context.Background(), 9001)
	if err != nil {
		t.Fatalf("FetchGameBundle() error = %v", err)
	}
	if bundle.Game.ID != 9001 || bundle.Game.Status != game.StatusLive {
		t.Fatalf("game header = %+v", bundle.Game)
	}
	if len(bundle.Rows) != 2 {
		t.Fatalf("expected two stat rows, got=%d", len(bundle.Rows))
	}
	if bundle.Rows[0].Side != game.SideHome || bundle.Rows[0].PlayerID != 101 {
		t.Fatalf("home row = %+v", bundle.Rows[0])
	}
	if bundle.Rows[1].Side != game.SideAway || bundle.Rows[1].PlayerID != 201 {
		t.Fatalf("away row = %+v", bundle.Rows[1])
	}

	cards, ok := bundle.Cards[101]
	if !ok {
		t.Fatal("expected card tally for player 101")
	}
	if cards.Yellow != 2 || cards.Red != 1 {
		t.Fatalf("cards = %+v, want 2 yellow 1 red", cards)
	}
	if _, ok := bundle.Cards[201]; ok {
		t.Fatal("goal comment must not produce a card tally")
	}
}

func TestFetchGameBundleToleratesMissingComments(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/event/9002", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"event": {"id": 9002, "status": {"type": "finished"}}}`))
	})
	mux.HandleFunc("/event/9002/lineups", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"home": {"players": [{"player": {"id": 301, "position": "D"}, "statistics": {"minutesPlayed": 90}}]}, "away": {"players": []}}`))
	})
	mux.HandleFunc("/event/9002/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	client, _ := newTestClient(t, mux)

	bundle, err := client.FetchGameBundle(context.Background(), 9002)
	if err != nil {
		t.Fatalf("FetchGameBundle() error = %v", err)
	}
	if len(bundle.Rows) != 1 {
		t.Fatalf("expected one stat row, got=%d", len(bundle.Rows))
	}
	if bundle.Cards != nil {
		t.Fatalf("cards = %+v, want nil when commentary is missing", bundle.Cards)
	}
}

func TestExecuteRequestRetriesRetryableStatuses(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:      srv.URL,
		TournamentID: 140,
		SeasonID:     2026,
		MaxRetries:   2,
		Logger:       logging.NewNop(),
	})

	games, err := client.FetchRoundGames(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchRoundGames() error = %v", err)
	}
	if len(games) != 0 {
		t.Fatalf("expected no games, got=%d", len(games))
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestMapEventStatus(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"finished":   game.StatusFinished,
		"inprogress": game.StatusLive,
		"notstarted": game.StatusScheduled,
		"":           game.StatusScheduled,
		"postponed":  game.StatusPostponed,
		"canceled":   game.StatusCancelled,
		"suspended":  "SUSPENDED",
	}
	for raw, want := range cases {
		if got := mapEventStatus(raw); got != want {
			t.Fatalf("mapEventStatus(%q) = %s, want %s", raw, got, want)
		}
	}
}
