// Package pity implements the bounded-variance safety valve layered on top
// of the raw weighted draw. After a sufficiently long loss streak a losing
// draw may be replaced with a payout sampled from a capped-EV table, mapped
// back onto the nearest symbol in the case's pool.
package pity

import (
	"context"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/selector"
)

// Decision is the outcome of a pity evaluation. When Activated is false the
// raw draw stands and Payout is meaningless.
type Decision struct {
	Activated bool
	Payout    int64
}

// LossStreak counts consecutive losing records from newest backward,
// stopping at the first record where the reward covered the cost.
// Records must be ordered newest-first.
func LossStreak(records []domain.OpeningRecord) int {
	streak := 0
	for _, rec := range records {
		if !rec.IsLoss() {
			break
		}
		streak++
	}
	return streak
}

// SpinsSinceLastActivation returns the number of spins that have elapsed
// since the most recent pity-flagged record in the window, counted by
// position in the ordered history rather than wall-clock time. The second
// return is false when no flagged record exists in the window.
func SpinsSinceLastActivation(records []domain.OpeningRecord) (int, bool) {
	for i, rec := range records {
		if rec.PityActivated {
			return i, true
		}
	}
	return 0, false
}

// InCooldown reports whether a pity activation inside the lookback window
// is still too recent for pity to fire again.
func InCooldown(cfg *domain.PityConfig, records []domain.OpeningRecord) bool {
	window := records
	if len(window) > cfg.LookbackWindow {
		window = window[:cfg.LookbackWindow]
	}
	since, found := SpinsSinceLastActivation(window)
	if !found {
		return false
	}
	return since < cfg.MinSinceLast
}

// Evaluate decides whether pity overrides the raw draw for the current
// wager. Pity activates only when the loss streak has reached the
// threshold, no activation in the window is still cooling down, and the
// unmodified raw draw would itself be a loss - a winning draw is never
// converted into a different outcome.
//
// The payout is sampled from the config's table reusing the wager's own
// random value, keeping the override reproducible from recorded provenance.
func Evaluate(ctx context.Context, cfg *domain.PityConfig, records []domain.OpeningRecord, cost, rawReward int64, r float64) Decision {
	if cfg == nil {
		return Decision{}
	}
	if rawReward >= cost {
		return Decision{}
	}

	streak := LossStreak(records)
	if streak < cfg.LossThreshold {
		return Decision{}
	}

	if InCooldown(cfg, records) {
		return Decision{}
	}

	payout := selector.SamplePayout(ctx, cfg.PayoutTable, r)
	logger.FromContext(ctx).Info(LogMsgPityActivated,
		"loss_streak", streak,
		"threshold", cfg.LossThreshold,
		"raw_reward", rawReward,
		"cost", cost,
		"payout", payout)

	return Decision{Activated: true, Payout: payout}
}

// MapPayoutToSymbol finds the pool symbol whose value is numerically
// closest to the sampled payout. On a distance tie the symbol that does not
// exceed the target wins; when both candidates sit on the same side the
// higher value wins. Symbols must be the case pool resolved in catalog
// order; returns the symbol ID.
func MapPayoutToSymbol(symbols []domain.Symbol, target int64) int {
	best := symbols[0]
	for _, candidate := range symbols[1:] {
		if closerToTarget(candidate, best, target) {
			best = candidate
		}
	}
	return best.ID
}

// closerToTarget reports whether candidate beats best for the given target.
func closerToTarget(candidate, best domain.Symbol, target int64) bool {
	candDist := absDiff(candidate.Value, target)
	bestDist := absDiff(best.Value, target)
	if candDist != bestDist {
		return candDist < bestDist
	}

	candUnder := candidate.Value <= target
	bestUnder := best.Value <= target
	if candUnder != bestUnder {
		// Equidistant across the target: keep the one that does not overpay
		return candUnder
	}
	return candidate.Value > best.Value
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
