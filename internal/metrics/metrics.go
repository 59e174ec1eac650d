package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	WagersSettled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersSettled,
			Help: HelpTextWagersSettled,
		},
		[]string{LabelCase, LabelOutcome},
	)

	WagersFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWagersFailed,
			Help: HelpTextWagersFailed,
		},
		[]string{LabelReason},
	)

	PityActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityActivations,
			Help: HelpTextPityActivations,
		},
		[]string{LabelCase},
	)

	CreditsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCreditsApplied,
			Help: HelpTextCreditsApplied,
		},
		[]string{LabelReason, LabelDirection},
	)

	CreditEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCreditEventsTotal,
			Help: HelpTextCreditEventsTotal,
		},
		[]string{LabelReason},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitRejected,
			Help: HelpTextRateLimitRejected,
		},
		[]string{LabelAction},
	)

	AbuseFlagsRaised = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAbuseFlagsRaised,
			Help: HelpTextAbuseFlagsRaised,
		},
		[]string{LabelPattern},
	)

	Compensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCompensations,
			Help: HelpTextCompensations,
		},
		[]string{LabelOutcome},
	)
)

// RecordCreditDelta tracks credits moving through the ledger, split by
// direction so house take and payout totals can be charted separately.
func RecordCreditDelta(reason string, delta int64) {
	CreditEventsTotal.WithLabelValues(reason).Inc()
	if delta < 0 {
		CreditsApplied.WithLabelValues(reason, DirectionDebit).Add(float64(-delta))
		return
	}
	CreditsApplied.WithLabelValues(reason, DirectionCredit).Add(float64(delta))
}
