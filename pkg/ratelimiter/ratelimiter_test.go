package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter() (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return newRateLimiter(clock.Now), clock
}

func TestAllow(t *testing.T) {
	rl, clock := newTestLimiter()
	rl.SetPolicy("login", 3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("login", "a@example.com"), "attempt %d", i+1)
	}
	assert.False(t, rl.Allow("login", "a@example.com"))

	// other keys are independent
	assert.True(t, rl.Allow("login", "b@example.com"))

	clock.Advance(61 * time.Second)
	assert.True(t, rl.Allow("login", "a@example.com"))
}

func TestAllowUnknownNamespaceDenied(t *testing.T) {
	rl, _ := newTestLimiter()
	assert.False(t, rl.Allow("nope", "key"))
	assert.Equal(t, time.Duration(0), rl.RetryAfter("nope", "key"))
}

func TestReset(t *testing.T) {
	rl, _ := newTestLimiter()
	rl.SetPolicy("login", 1, time.Minute)

	assert.True(t, rl.Allow("login", "k"))
	assert.False(t, rl.Allow("login", "k"))

	rl.Reset("login", "k")
	assert.True(t, rl.Allow("login", "k"))
}

func TestRetryAfter(t *testing.T) {
	rl, clock := newTestLimiter()
	rl.SetPolicy("login", 2, time.Minute)

	assert.Equal(t, time.Duration(0), rl.RetryAfter("login", "k"))

	rl.Allow("login", "k")
	clock.Advance(20 * time.Second)
	rl.Allow("login", "k")

	assert.Equal(t, 40*time.Second, rl.RetryAfter("login", "k"))

	clock.Advance(41 * time.Second)
	assert.Equal(t, 19*time.Second, rl.RetryAfter("login", "k"))
}

func TestEvictExpired(t *testing.T) {
	rl, clock := newTestLimiter()
	rl.SetPolicy("login", 5, time.Minute)

	rl.Allow("login", "old")
	clock.Advance(30 * time.Second)
	rl.Allow("login", "fresh")
	clock.Advance(31 * time.Second)

	rl.evictExpired()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.attempts, "login:old")
	assert.Contains(t, rl.attempts, "login:fresh")
}

func TestStopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	assert.NotPanics(t, rl.Stop)
}

func TestConcurrentAllow(t *testing.T) {
	rl, _ := newTestLimiter()
	rl.SetPolicy("login", 10, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("login", "shared") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed)
}
