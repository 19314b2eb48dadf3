package orders

import (
	"sync"
	"time"
)

// RateLimiter tracks submission timestamps per client key over a
// rolling window. Per-key updates are serialized by the mutex; that is
// the only cross-request coordination the core needs.
type RateLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string][]time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: make(map[string][]time.Time),
	}
}

// Allow records an attempt for key unless the window is already full.
// When full it reports how long until the oldest attempt ages out,
// never less than a second.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var fresh []time.Time
	for _, stamp := range l.buckets[key] {
		if now.Sub(stamp) < l.window {
			fresh = append(fresh, stamp)
		}
	}

	if len(fresh) >= l.max {
		retryAfter := l.window
		if len(fresh) > 0 {
			retryAfter = l.window - now.Sub(fresh[0])
		}
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		l.buckets[key] = fresh
		return false, retryAfter
	}

	l.buckets[key] = append(fresh, now)
	return true, 0
}
