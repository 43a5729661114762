package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Policy caps attempts per key inside a sliding window
type Policy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter is an in-memory sliding-window limiter keyed by namespace and key.
// Namespaces without a policy are denied.
type RateLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter starts a limiter with a background sweeper. Call Stop when done.
func NewRateLimiter() *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.sweep(time.Minute)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		attempts: make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      now,
		stop:     make(chan struct{}),
	}
}

// SetPolicy configures a namespace, e.g. rl.SetPolicy("login", 5, 5*time.Minute)
func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.policies[namespace] = Policy{MaxAttempts: maxAttempts, Window: window}
}

// Allow records an attempt and reports whether it is within the policy
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return false
	}

	now := rl.now()
	id := namespace + ":" + key
	recent := prune(rl.attempts[id], now.Add(-policy.Window))

	if len(recent) >= policy.MaxAttempts {
		rl.attempts[id] = recent
		return false
	}

	rl.attempts[id] = append(recent, now)
	return true
}

// Reset forgets all attempts for key, typically after a successful login
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, namespace+":"+key)
}

// RetryAfter returns how long until the oldest attempt in the window expires
func (rl *RateLimiter) RetryAfter(namespace, key string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, ok := rl.policies[namespace]
	if !ok {
		return 0
	}

	now := rl.now()
	recent := prune(rl.attempts[namespace+":"+key], now.Add(-policy.Window))
	if len(recent) == 0 {
		return 0
	}

	remaining := recent[0].Add(policy.Window).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Stop terminates the background sweeper. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evictExpired()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) evictExpired() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for id, list := range rl.attempts {
		namespace, _, _ := strings.Cut(id, ":")
		policy, ok := rl.policies[namespace]
		if !ok {
			delete(rl.attempts, id)
			continue
		}
		recent := prune(list, now.Add(-policy.Window))
		if len(recent) == 0 {
			delete(rl.attempts, id)
			continue
		}
		rl.attempts[id] = recent
	}
}

// prune keeps timestamps after cutoff; attempts are appended in order
func prune(list []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(list) && !list[i].After(cutoff) {
		i++
	}
	return list[i:]
}
