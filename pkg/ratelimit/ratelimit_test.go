package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllow(t *testing.T) {
	limiter := NewLimiter(time.Minute, 2)

	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.True(t, limiter.Allow("203.0.113.7"))
	assert.False(t, limiter.Allow("203.0.113.7"), "third hit inside the window must be rejected")

	assert.True(t, limiter.Allow("198.51.100.1"), "keys are limited independently")
}

func TestLimiterWindowExpiry(t *testing.T) {
	limiter := NewLimiter(20*time.Millisecond, 1)

	assert.True(t, limiter.Allow("guest"))
	assert.False(t, limiter.Allow("guest"))

	time.Sleep(30 * time.Millisecond)

	assert.True(t, limiter.Allow("guest"), "hits older than the window are forgotten")
}

func TestLimiterRemaining(t *testing.T) {
	limiter := NewLimiter(time.Minute, 3)

	assert.Equal(t, 3, limiter.Remaining("guest"))
	limiter.Allow("guest")
	assert.Equal(t, 2, limiter.Remaining("guest"))
}

func TestLimiterForgetsIdleKeys(t *testing.T) {
	base := time.Now()
	limiter := NewLimiter(time.Second, 1)
	limiter.now = func() time.Time { return base }

	limiter.Allow("guest")
	limiter.now = func() time.Time { return base.Add(2 * time.Second) }

	assert.Equal(t, 1, limiter.Remaining("guest"))
	assert.NotContains(t, limiter.hits, "guest")
}
