package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameWagersSettled      = "wagers_settled_total"
	MetricNameWagersFailed       = "wagers_failed_total"
	MetricNamePityActivations    = "pity_activations_total"
	MetricNameCreditsApplied     = "credits_applied_total"
	MetricNameCreditEventsTotal  = "credit_events_total"
	MetricNameRateLimitRejected  = "rate_limit_rejections_total"
	MetricNameAbuseFlagsRaised   = "abuse_flags_raised_total"
	MetricNameCompensations      = "settlement_compensations_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextWagersSettled     = "Total number of wagers settled"
	HelpTextWagersFailed      = "Total number of wagers that failed before settling"
	HelpTextPityActivations   = "Total number of pity overrides applied"
	HelpTextCreditsApplied    = "Total credits moved through the ledger by direction"
	HelpTextCreditEventsTotal = "Total number of credit events recorded"
	HelpTextRateLimitRejected = "Total number of requests rejected by the rate limiter"
	HelpTextAbuseFlagsRaised  = "Total number of advisory abuse pattern flags"
	HelpTextCompensations     = "Total number of compensating re-credits attempted"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelCase      = "case"
	LabelReason    = "reason"
	LabelAction    = "action"
	LabelPattern   = "pattern"
	LabelDirection = "direction"
	LabelOutcome   = "outcome"
)

// Label values for the credit direction label
const (
	DirectionDebit  = "debit"
	DirectionCredit = "credit"
)

// HTTPLatencyBuckets covers the expected wager settlement latency range
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}
