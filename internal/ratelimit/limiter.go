// Package ratelimit guards the settlement engine with sliding-window
// counters and advisory abuse-pattern detection. The limiter must pass
// before the ledger or the RNG are touched.
//
// State is held in-process behind a mutex; a single instance does not
// coordinate across replicas. Horizontal scaling needs an external shared
// counter store behind the same Store interface.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/casedrop/engine/internal/logger"
	"github.com/casedrop/engine/internal/metrics"
)

// Action identifies what kind of request is being counted. Ceilings are
// per-action: case-opening bursts are capped tighter than general reads.
type Action string

const (
	ActionOpenCase Action = "open_case"
	ActionRead     Action = "read"
)

// Limit is one action's ceiling over a trailing window.
type Limit struct {
	Window  time.Duration
	Ceiling int
}

// Decision is the outcome of a limiter check. RetryAfter is only
// meaningful when Allowed is false.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Store holds per-(subject, action) request timestamps. The in-memory
// implementation below is the single-instance default; a shared counter
// service can be swapped in behind this interface for multi-instance
// deployments.
type Store interface {
	// Record prunes timestamps older than the window, reports how many
	// remain, and appends now if the count is below the ceiling. Returns
	// the count before the append and the oldest surviving timestamp.
	Record(key string, now time.Time, window time.Duration, ceiling int) (count int, oldest time.Time)
}

// Limiter gates requests by (subject, action). Subjects are IPs, wallets,
// or user ids; the limiter does not care which.
type Limiter interface {
	Allow(ctx context.Context, subject string, action Action) Decision
}

type limiter struct {
	limits map[Action]Limit
	store  Store
	now    func() time.Time
}

// NewLimiter creates a sliding-window limiter with the given per-action
// limits backed by an in-memory LRU store of cacheSize subjects.
func NewLimiter(limits map[Action]Limit, cacheSize int) Limiter {
	maxWindow := time.Duration(0)
	for _, l := range limits {
		if l.Window > maxWindow {
			maxWindow = l.Window
		}
	}
	return &limiter{
		limits: limits,
		store:  newMemoryStore(cacheSize, maxWindow),
		now:    time.Now,
	}
}

func (l *limiter) Allow(ctx context.Context, subject string, action Action) Decision {
	limit, ok := l.limits[action]
	if !ok {
		// Unconfigured actions are not limited
		return Decision{Allowed: true}
	}

	now := l.now()
	key := subject + ":" + string(action)
	count, oldest := l.store.Record(key, now, limit.Window, limit.Ceiling)

	if count < limit.Ceiling {
		return Decision{Allowed: true}
	}

	retryAfter := limit.Window - now.Sub(oldest)
	if retryAfter < 0 {
		retryAfter = 0
	}

	metrics.RateLimitRejections.WithLabelValues(string(action)).Inc()
	logger.FromContext(ctx).Warn(LogMsgRateLimitExceeded,
		"subject", subject,
		"action", string(action),
		"count", count,
		"ceiling", limit.Ceiling,
		"retry_after", retryAfter)

	return Decision{Allowed: false, RetryAfter: retryAfter}
}

// memoryStore keeps per-key timestamp windows in an expirable LRU so idle
// subjects age out instead of growing the map without bound.
type memoryStore struct {
	mu      sync.Mutex
	entries *expirable.LRU[string, *windowEntry]
}

type windowEntry struct {
	timestamps []time.Time
}

func newMemoryStore(cacheSize int, ttl time.Duration) *memoryStore {
	if ttl <= 0 {
		ttl = DefaultStoreTTL
	}
	return &memoryStore{
		entries: expirable.NewLRU[string, *windowEntry](cacheSize, nil, ttl*2),
	}
}

func (s *memoryStore) Record(key string, now time.Time, window time.Duration, ceiling int) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries.Get(key)
	if !ok {
		entry = &windowEntry{}
	}

	cutoff := now.Add(-window)
	kept := entry.timestamps[:0]
	for _, ts := range entry.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	entry.timestamps = kept

	count := len(entry.timestamps)
	oldest := now
	if count > 0 {
		oldest = entry.timestamps[0]
	}

	if count < ceiling {
		entry.timestamps = append(entry.timestamps, now)
	}
	s.entries.Add(key, entry)

	return count, oldest
}
