// Package selector maps a uniform random value onto a case's weighted
// symbol pool. Selection is pure: no state, no side effects, fully
// reproducible from the persisted random value.
package selector

import (
	"context"

	"github.com/casedrop/engine/internal/domain"
	"github.com/casedrop/engine/internal/logger"
)

// PercentScale converts a [0,1) random value to the percentage space the
// pool weights live in.
const PercentScale = 100.0

// Select walks the pool in catalog order accumulating weights and returns
// the first symbol whose cumulative weight reaches r*100. A value landing
// exactly on a cumulative boundary resolves to the lower symbol.
//
// If floating-point drift or a malformed pool leaves no symbol selected,
// the first entry is returned deterministically and the condition is logged
// as a data-integrity warning - it is never silently normal.
func Select(ctx context.Context, pool []domain.PoolEntry, r float64) int {
	p := r * PercentScale

	var cumulative float64
	for _, entry := range pool {
		cumulative += entry.Weight
		if cumulative >= p {
			return entry.SymbolID
		}
	}

	logger.FromContext(ctx).Warn(LogMsgPoolFallthrough,
		"random_value", r,
		"cumulative_weight", cumulative,
		"pool_size", len(pool))
	return pool[0].SymbolID
}

// SamplePayout picks a payout from a pity table by the same cumulative walk,
// reusing the wager's random value rather than drawing fresh randomness so
// the override stays reproducible from the recorded provenance. The table's
// probabilities sum to 1, so r is used unscaled.
func SamplePayout(ctx context.Context, table []domain.PityPayout, r float64) int64 {
	var cumulative float64
	for _, payout := range table {
		cumulative += payout.Probability
		if cumulative >= r {
			return payout.Value
		}
	}

	logger.FromContext(ctx).Warn(LogMsgTableFallthrough,
		"random_value", r,
		"cumulative_probability", cumulative,
		"table_size", len(table))
	return table[0].Value
}
