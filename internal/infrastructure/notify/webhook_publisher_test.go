package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
	"github.com/kbrleague/fantasy-h2h/internal/platform/resilience"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
)

func testSummary() usecase.RoundSettlementSummary {
	return usecase.RoundSettlementSummary{
		Round:     3,
		TeamCount: 2,
		Teams: []usecase.TeamRoundResult{
			{TeamID: "KBR", Total: 41.5},
			{TeamID: "VSC", Total: 38},
		},
		SettledAt: time.Date(2026, time.March, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestWebhookPublisherDeliversSummary(t *testing.T) {
	var got usecase.RoundSettlementSummary
	var gotSecret, gotDeliveryID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotSecret = r.Header.Get("X-Webhook-Secret")
		gotDeliveryID = r.Header.Get("X-Delivery-ID")
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode webhook body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(WebhookPublisherConfig{
		URL:    srv.URL,
		Secret: "round-secret",
	}, logging.NewNop())

	if err := pub.PublishRoundSettled(context.Background(), testSummary()); err != nil {
		t.Fatalf("PublishRoundSettled() error = %v", err)
	}
	if gotSecret != "round-secret" {
		t.Fatalf("X-Webhook-Secret = %q, want %q", gotSecret, "round-secret")
	}
	if gotDeliveryID == "" {
		t.Fatal("X-Delivery-ID header is empty")
	}
	if got.Round != 3 || got.TeamCount != 2 || len(got.Teams) != 2 {
		t.Fatalf("received summary = %+v, want round=3 team_count=2 teams=2", got)
	}
}

func TestWebhookPublisherRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(WebhookPublisherConfig{
		URL:     srv.URL,
		Retries: 3,
	}, logging.NewNop())

	if err := pub.PublishRoundSettled(context.Background(), testSummary()); err != nil {
		t.Fatalf("PublishRoundSettled() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
}

func TestWebhookPublisherDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(WebhookPublisherConfig{
		URL:     srv.URL,
		Retries: 3,
	}, logging.NewNop())

	if err := pub.PublishRoundSettled(context.Background(), testSummary()); err == nil {
		t.Fatal("PublishRoundSettled() error = nil, want non-nil")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestWebhookPublisherRejectsInvalidURL(t *testing.T) {
	pub := NewWebhookPublisher(WebhookPublisherConfig{
		URL: "ftp://queue.internal/settlements",
	}, logging.NewNop())

	if err := pub.PublishRoundSettled(context.Background(), testSummary()); err == nil {
		t.Fatal("PublishRoundSettled() error = nil, want non-nil")
	}
}

func TestWebhookPublisherOpensCircuitAfterRepeatedFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	pub := NewWebhookPublisher(WebhookPublisherConfig{
		URL: srv.URL,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		if err := pub.PublishRoundSettled(context.Background(), testSummary()); err == nil {
			t.Fatalf("attempt %d: error = nil, want non-nil", i+1)
		}
	}

	err := pub.PublishRoundSettled(context.Background(), testSummary())
	if err == nil {
		t.Fatal("PublishRoundSettled() error = nil, want circuit rejection")
	}
}
