package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	idgen "github.com/kbrleague/fantasy-h2h/internal/platform/id"
	"github.com/kbrleague/fantasy-h2h/internal/platform/logging"
	"github.com/kbrleague/fantasy-h2h/internal/platform/resilience"
	"github.com/kbrleague/fantasy-h2h/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookPublisherConfig struct {
	URL            string
	Secret         string
	Retries        int
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookPublisher delivers round settlement summaries to a configured
// HTTP endpoint. Delivery is best effort: settlement never rolls back
// on webhook failure.
type WebhookPublisher struct {
	client         *http.Client
	url            string
	secret         string
	retries        int
	ids            idgen.Generator
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookPublisher(cfg WebhookPublisherConfig, logger *logging.Logger) *WebhookPublisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookPublisher{
		client: &http.Client{
			Timeout: timeout,
		},
		url:            strings.TrimSpace(cfg.URL),
		secret:         strings.TrimSpace(cfg.Secret),
		retries:        cfg.Retries,
		ids:            idgen.NewRandomGenerator(),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (p *WebhookPublisher) PublishRoundSettled(ctx context.Context, summary usecase.RoundSettlementSummary) error {
	if p.circuitEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", p.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	targetURL, err := validateHTTPURL(p.url)
	if err != nil {
		return crerr.Wrap(err, "invalid SETTLEMENT_WEBHOOK_URL")
	}

	body, err := sonic.Marshal(summary)
	if err != nil {
		return crerr.Wrap(err, "marshal settlement summary")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", targetURL),
			attribute.Int("webhook.round", summary.Round),
			attribute.Int("webhook.team_count", summary.TeamCount),
		)
	}

	// One delivery ID across all attempts so the receiver can dedupe
	// retried deliveries.
	deliveryID, err := p.ids.NewID()
	if err != nil {
		return crerr.Wrap(err, "generate delivery id")
	}

	attempts := p.retries + 1
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				p.recordCircuitResult(ctx.Err())
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}

		lastErr = p.post(ctx, targetURL, deliveryID, body)
		if lastErr == nil {
			p.logger.InfoContext(ctx, "settlement webhook delivered", "round", summary.Round, "team_count", summary.TeamCount, "delivery_id", deliveryID, "attempt", attempt+1)
			p.recordCircuitResult(nil)
			return nil
		}
		if !crerr.Is(lastErr, errWebhookTransient) {
			break
		}
	}

	p.recordCircuitResult(lastErr)
	return lastErr
}

func (p *WebhookPublisher) post(ctx context.Context, targetURL, deliveryID string, body []byte) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.Write(body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, strings.NewReader(buf.String()))
	if err != nil {
		return crerr.Wrap(err, "create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", deliveryID)
	if p.secret != "" {
		req.Header.Set("X-Webhook-Secret", p.secret)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post settlement webhook url=%s: %v", errWebhookTransient, targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if isRetryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: post settlement webhook status=%d url=%s body=%s", errWebhookTransient, resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
		}
		return fmt.Errorf("post settlement webhook status=%d url=%s body=%s", resp.StatusCode, targetURL, strings.TrimSpace(string(raw)))
	}

	return nil
}

func (p *WebhookPublisher) recordCircuitResult(err error) {
	if !p.circuitEnabled {
		return
	}
	if err != nil {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
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

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}

	return candidate, nil
}
