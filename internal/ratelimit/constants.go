package ratelimit

import "time"

// Limiter defaults
const (
	DefaultStoreTTL = 5 * time.Minute
)

// Detector thresholds. All detection is advisory; these numbers tune
// sensitivity, not enforcement.
const (
	// SampleSize bounds the rolling per-subject sample
	SampleSize = 50

	// SampleTTL ages out idle subjects
	SampleTTL = 30 * time.Minute

	// BurstWindow / BurstCountThreshold: this many wagers inside the
	// window is flagged as a high-frequency burst
	BurstWindow         = 10 * time.Second
	BurstCountThreshold = 10

	// TimingMinSample gates the inter-arrival variance check;
	// TimingStdDevFloorSeconds is the bot-like regularity floor
	TimingMinSample          = 10
	TimingStdDevFloorSeconds = 0.05

	// WinRateMinSample gates the win-rate check; ImprobableWinRate is the
	// rolling rate considered statistically implausible for a house-edge pool
	WinRateMinSample  = 30
	ImprobableWinRate = 0.75
)

// Log Messages
const (
	LogMsgRateLimitExceeded   = "Rate limit exceeded"
	LogMsgAbusePatternFlagged = "Abuse pattern flagged for review"
)
