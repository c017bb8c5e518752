// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Total number of inbound webhook requests",
		},
		[]string{"message_type", "outcome"},
	)

	FunctionInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "function_invocations_total",
			Help: "Total number of function invocations dispatched",
		},
		[]string{"function", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "upstream_request_duration_seconds",
			Help: "Duration of upstream service requests in seconds",
		},
		[]string{"service"},
	)

	UpstreamRequestFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_request_failures_total",
			Help: "Total number of failed upstream service requests",
		},
		[]string{"service", "error_code"},
	)
)
