package domain

import (
	"fmt"
	"math"
)

// PityProbabilityTolerance is the allowed drift on a payout table's
// probability sum.
const PityProbabilityTolerance = 1e-6

// PityPayout is one row of a pity payout table: a credit value and the
// probability of sampling it.
type PityPayout struct {
	Value       int64   `json:"value"`
	Probability float64 `json:"probability"`
}

// PityConfig bounds the variance override for one case. Supplied externally
// and read-only to the engine; validated once at load time.
type PityConfig struct {
	CaseID           int          `json:"case_id"`
	LossThreshold    int          `json:"loss_threshold"`
	MinSinceLast     int          `json:"min_since_last"`
	LookbackWindow   int          `json:"lookback_window"`
	PayoutTable      []PityPayout `json:"payout_table"`
	ExpectedValueCap float64      `json:"ev_cap"`
}

// Validate enforces the load-time invariants: probabilities sum to 1 within
// tolerance and the table's expected value does not exceed the EV cap.
// Violations are fatal configuration errors, never silently clamped.
func (c *PityConfig) Validate() error {
	if c.LossThreshold <= 0 {
		return fmt.Errorf("%w: case %d loss threshold must be positive, got %d", ErrInvalidPityConfig, c.CaseID, c.LossThreshold)
	}
	if c.MinSinceLast < 0 {
		return fmt.Errorf("%w: case %d min-since-last must not be negative, got %d", ErrInvalidPityConfig, c.CaseID, c.MinSinceLast)
	}
	if c.LookbackWindow <= 0 {
		return fmt.Errorf("%w: case %d lookback window must be positive, got %d", ErrInvalidPityConfig, c.CaseID, c.LookbackWindow)
	}
	if len(c.PayoutTable) == 0 {
		return fmt.Errorf("%w: case %d payout table is empty", ErrInvalidPityConfig, c.CaseID)
	}

	var probSum, ev float64
	for _, p := range c.PayoutTable {
		if p.Probability < 0 {
			return fmt.Errorf("%w: case %d payout %d has negative probability %f", ErrInvalidPityConfig, c.CaseID, p.Value, p.Probability)
		}
		if p.Value < 0 {
			return fmt.Errorf("%w: case %d payout value must not be negative, got %d", ErrInvalidPityConfig, c.CaseID, p.Value)
		}
		probSum += p.Probability
		ev += float64(p.Value) * p.Probability
	}
	if math.Abs(probSum-1) > PityProbabilityTolerance {
		return fmt.Errorf("%w: case %d payout probabilities sum to %f, want 1", ErrInvalidPityConfig, c.CaseID, probSum)
	}
	if ev > c.ExpectedValueCap {
		return fmt.Errorf("%w: case %d payout table EV %f exceeds cap %f", ErrInvalidPityConfig, c.CaseID, ev, c.ExpectedValueCap)
	}
	return nil
}

// ExpectedValue returns the probability-weighted average payout of the table.
func (c *PityConfig) ExpectedValue() float64 {
	var ev float64
	for _, p := range c.PayoutTable {
		ev += float64(p.Value) * p.Probability
	}
	return ev
}
