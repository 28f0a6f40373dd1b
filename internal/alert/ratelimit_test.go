package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterCooldown(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter(5 * time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))

	now = now.Add(4 * time.Minute)
	assert.False(t, rl.Allow("k"))

	// other identities are independent
	assert.True(t, rl.Allow("other"))

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.Allow("k"))
	assert.False(t, rl.Allow("k"))
}

func TestRateLimiterSweep(t *testing.T) {
	now := time.Unix(1700000000, 0)
	rl := NewRateLimiter(5 * time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("stale")
	now = now.Add(11 * time.Minute)
	rl.Allow("fresh")
	rl.sweep()

	rl.mu.Lock()
	_, staleKept := rl.lastSent["stale"]
	_, freshKept := rl.lastSent["fresh"]
	rl.mu.Unlock()
	assert.False(t, staleKept)
	assert.True(t, freshKept)
}
