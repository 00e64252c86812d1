package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry
// attempts performed by gateways.
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// NewPollFailuresTotal returns a Prometheus counter vector for failed poll
// iterations, labeled by loop (state or telemetry).
func NewPollFailuresTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "tracking_poll_failures_total",
		Help: "Total number of failed tracking poll iterations",
	}, []string{"loop"})
}

// NewCommandsDispatchedTotal returns a Prometheus counter vector for
// dispatched segment commands, labeled by kind and outcome.
func NewCommandsDispatchedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "commands_dispatched_total",
		Help: "Total number of segment commands dispatched",
	}, []string{"kind", "outcome"})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of
// rejected HTTP requests due to rate limiting.
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
