package orders

import (
	"context"
	"time"

	"dronetrack/internal/domain"
	"dronetrack/internal/gateway/httpx"
	"dronetrack/internal/logx"
)

type gateway interface {
	GetOrder(context.Context, string) (*domain.Order, error)
	SendCommand(context.Context, domain.Command) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the retry behavior of RetryingGateway.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries transient read failures with exponential backoff.
// SendCommand is never retried: the remote state machine treats a repeated
// command as a conflict, so a retry could mask the real outcome.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingGateway wraps next with retry behavior. Returns nil when next
// is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// GetOrder fetches an order, retrying transient failures.
func (g *RetryingGateway) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		o, err := g.next.GetOrder(ctx, orderID)
		if err == nil {
			return o, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !httpx.Retryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("orders gateway retry",
			logx.String("method", "GetOrder"),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, g.sleep, delay) {
			break
		}
	}
	return nil, lastErr
}

// SendCommand passes through without retries.
func (g *RetryingGateway) SendCommand(ctx context.Context, cmd domain.Command) error {
	return g.next.SendCommand(ctx, cmd)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
