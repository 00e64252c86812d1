package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"dronetrack/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal  prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal     prometheus.Counter     `name:"gateway_retries_total"`
	PollFailuresTotal       *prometheus.CounterVec `name:"poll_failures_total"`
	CommandsDispatchedTotal *prometheus.CounterVec `name:"commands_dispatched_total"`
}

// provideMetrics registers the service collectors on the default registerer.
// Re-registration (for example across container rebuilds in tests) reuses the
// already registered collector instead of failing.
func provideMetrics() (metricsOut, error) {
	out := metricsOut{}

	rl, err := registerCounter(metrics.NewRateLimitExceededTotal())
	if err != nil {
		return out, fmt.Errorf("register rate_limit_exceeded_total: %w", err)
	}
	gr, err := registerCounter(metrics.NewGatewayRetriesTotal())
	if err != nil {
		return out, fmt.Errorf("register gateway_retries_total: %w", err)
	}
	pf, err := registerCounterVec(metrics.NewPollFailuresTotal())
	if err != nil {
		return out, fmt.Errorf("register tracking_poll_failures_total: %w", err)
	}
	cd, err := registerCounterVec(metrics.NewCommandsDispatchedTotal())
	if err != nil {
		return out, fmt.Errorf("register commands_dispatched_total: %w", err)
	}

	out.RateLimitExceededTotal = rl
	out.GatewayRetriesTotal = gr
	out.PollFailuresTotal = pf
	out.CommandsDispatchedTotal = cd
	return out, nil
}

func registerCounter(c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerCounterVec(v *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := prometheus.Register(v); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return v, nil
}
