package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/metrics"
)

// Abuse pattern names, used as metric labels and log fields.
const (
	PatternBurst             = "high_frequency_burst"
	PatternLowVarianceTiming = "low_variance_timing"
	PatternImprobableWinRate = "improbable_win_rate"
)

// Detector flags suspicious wager patterns for downstream review. Flags
// are advisory: nothing here rejects a request, enforcement belongs to
// human review or an external risk system.
type Detector interface {
	// RecordWager feeds one settled wager into the subject's rolling
	// sample and returns the pattern names flagged by it, if any.
	RecordWager(ctx context.Context, subject string, won bool) []string
}

type detector struct {
	mu      sync.Mutex
	samples *expirable.LRU[string, *wagerSample]
	now     func() time.Time
}

type wagerSample struct {
	timestamps []time.Time
	wins       []bool
}

// NewDetector creates an advisory abuse detector holding a rolling sample
// per subject.
func NewDetector(cacheSize int) Detector {
	return &detector{
		samples: expirable.NewLRU[string, *wagerSample](cacheSize, nil, SampleTTL),
		now:     time.Now,
	}
}

func (d *detector) RecordWager(ctx context.Context, subject string, won bool) []string {
	d.mu.Lock()
	sample, ok := d.samples.Get(subject)
	if !ok {
		sample = &wagerSample{}
	}

	sample.timestamps = append(sample.timestamps, d.now())
	sample.wins = append(sample.wins, won)
	if len(sample.timestamps) > SampleSize {
		sample.timestamps = sample.timestamps[1:]
		sample.wins = sample.wins[1:]
	}
	d.samples.Add(subject, sample)

	flags := d.evaluate(sample)
	d.mu.Unlock()

	log := logger.FromContext(ctx)
	for _, pattern := range flags {
		metrics.AbuseFlagsRaised.WithLabelValues(pattern).Inc()
		log.Warn(LogMsgAbusePatternFlagged, "subject", subject, "pattern", pattern)
	}
	return flags
}

// evaluate runs all pattern checks against the sample. Caller holds the mutex.
func (d *detector) evaluate(sample *wagerSample) []string {
	var flags []string
	if d.isBurst(sample) {
		flags = append(flags, PatternBurst)
	}
	if d.isLowVarianceTiming(sample) {
		flags = append(flags, PatternLowVarianceTiming)
	}
	if d.isImprobableWinRate(sample) {
		flags = append(flags, PatternImprobableWinRate)
	}
	return flags
}

// isBurst flags when too many wagers land inside the burst window.
func (d *detector) isBurst(sample *wagerSample) bool {
	if len(sample.timestamps) < BurstCountThreshold {
		return false
	}
	cutoff := d.now().Add(-BurstWindow)
	recent := 0
	for i := len(sample.timestamps) - 1; i >= 0; i-- {
		if !sample.timestamps[i].After(cutoff) {
			break
		}
		recent++
	}
	return recent >= BurstCountThreshold
}

// isLowVarianceTiming flags machine-like regularity in the gaps between
// wagers: humans do not click with near-constant cadence.
func (d *detector) isLowVarianceTiming(sample *wagerSample) bool {
	if len(sample.timestamps) < TimingMinSample {
		return false
	}

	gaps := make([]float64, 0, len(sample.timestamps)-1)
	for i := 1; i < len(sample.timestamps); i++ {
		gaps = append(gaps, sample.timestamps[i].Sub(sample.timestamps[i-1]).Seconds())
	}

	var sum float64
	for _, g := range gaps {
		sum += g
	}
	mean := sum / float64(len(gaps))

	var variance float64
	for _, g := range gaps {
		variance += (g - mean) * (g - mean)
	}
	stddev := math.Sqrt(variance / float64(len(gaps)))

	return stddev < TimingStdDevFloorSeconds
}

// isImprobableWinRate flags a rolling win rate no fair weighted pool
// should sustain.
func (d *detector) isImprobableWinRate(sample *wagerSample) bool {
	if len(sample.wins) < WinRateMinSample {
		return false
	}
	wins := 0
	for _, won := range sample.wins {
		if won {
			wins++
		}
	}
	return float64(wins)/float64(len(sample.wins)) > ImprobableWinRate
}
