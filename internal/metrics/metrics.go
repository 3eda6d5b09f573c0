package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Command metrics
	CommandsTotal          *prometheus.CounterVec
	CommandDurationSeconds *prometheus.HistogramVec

	// Gateway metrics
	GatewayRequestsTotal   *prometheus.CounterVec
	GatewayDurationSeconds *prometheus.HistogramVec

	// Tipping metrics
	TipsSentTotal  *prometheus.CounterVec
	TipAmountTotal *prometheus.CounterVec

	// Webhook metrics
	WebhookRequestsTotal *prometheus.CounterVec
	RateLimitedTotal     prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	return &Metrics{
		CommandsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tipbot_commands_total",
				Help: "Total number of commands processed by command and status",
			},
			[]string{"command", "status"}, // status: success, error, invalid
		),

		CommandDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tipbot_command_duration_seconds",
				Help:    "Command processing duration in seconds by command",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30}, // bulk commands fan out N ledger calls
			},
			[]string{"command"},
		),

		GatewayRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tipbot_gateway_requests_total",
				Help: "Total number of outbound gateway requests by gateway, operation and status",
			},
			[]string{"gateway", "operation", "status"}, // gateway: directory, ledger
		),

		GatewayDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tipbot_gateway_request_duration_seconds",
				Help:    "Outbound gateway request duration in seconds by gateway",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15},
			},
			[]string{"gateway"},
		),

		TipsSentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tipbot_tips_sent_total",
				Help: "Total number of tips issued by strategy",
			},
			[]string{"strategy"}, // strategy: direct, rain, wayne, blaine, crane, reign
		),

		TipAmountTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tipbot_tip_amount_total",
				Help: "Total coin amount tipped by strategy",
			},
			[]string{"strategy"},
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "tipbot_webhook_requests_total",
				Help: "Total number of webhook requests by status",
			},
			[]string{"status"}, // status: dispatched, ignored, rate_limited, invalid
		),

		RateLimitedTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "tipbot_rate_limited_total",
				Help: "Total number of commands dropped by the per-user rate limiter",
			},
		),
	}
}

// RecordCommand records a processed command with its outcome and duration.
func (m *Metrics) RecordCommand(command, status string, duration time.Duration) {
	m.CommandsTotal.WithLabelValues(command, status).Inc()
	m.CommandDurationSeconds.WithLabelValues(command).Observe(duration.Seconds())
}

// RecordGatewayRequest records an outbound gateway call.
func (m *Metrics) RecordGatewayRequest(gateway, operation, status string, duration time.Duration) {
	m.GatewayRequestsTotal.WithLabelValues(gateway, operation, status).Inc()
	m.GatewayDurationSeconds.WithLabelValues(gateway).Observe(duration.Seconds())
}

// RecordTip records one issued tip for a strategy.
func (m *Metrics) RecordTip(strategy string, amount int) {
	m.TipsSentTotal.WithLabelValues(strategy).Inc()
	m.TipAmountTotal.WithLabelValues(strategy).Add(float64(amount))
}

// RecordWebhook records one webhook request outcome.
func (m *Metrics) RecordWebhook(status string) {
	m.WebhookRequestsTotal.WithLabelValues(status).Inc()
}

// RecordRateLimited records one command dropped by the per-user limiter.
func (m *Metrics) RecordRateLimited() {
	m.RateLimitedTotal.Inc()
}
