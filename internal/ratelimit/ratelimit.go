// Package ratelimit implements per-key token bucket limiting for inbound
// request protection. Keys are client IPs, so idle entries are evicted to
// keep the map bounded.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// sweepThreshold is the map size past which Allow looks for idle entries.
const sweepThreshold = 1024

// entry pairs a bucket with the last time its key was seen.
type entry struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per key. All buckets share the same
// rate and burst.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int

	// maxIdle is how long a key can go unseen before it is evictable:
	// one full bucket refill, so eviction never grants extra tokens.
	maxIdle time.Duration

	now func() time.Time
}

// New creates a limiter allowing rps requests per second with the given
// burst per key.
func New(rps float64, burst int) *Limiter {
	maxIdle := time.Duration(float64(burst) / rps * float64(time.Second))
	if maxIdle < time.Minute {
		maxIdle = time.Minute
	}

	return &Limiter{
		entries: make(map[string]*entry),
		limit:   rate.Limit(rps),
		burst:   burst,
		maxIdle: maxIdle,
		now:     time.Now,
	}
}

// Allow reports whether a request for key should proceed, consuming a token
// when it does.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= sweepThreshold {
			l.sweepLocked()
		}
		e = &entry{bucket: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = l.now()

	return e.bucket.Allow()
}

// Len reports how many keys currently hold a bucket.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// sweepLocked drops entries idle long enough that their buckets have fully
// refilled. Caller holds mu.
func (l *Limiter) sweepLocked() {
	cutoff := l.now().Add(-l.maxIdle)
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}
