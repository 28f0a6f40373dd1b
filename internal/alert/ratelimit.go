package alert

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 10 * time.Minute

// RateLimiter suppresses duplicate alerts per identity key within a cooldown
// window. State is in-memory and process-wide; a restart forgets it, which at
// worst lets one duplicate burst through.
type RateLimiter struct {
	mu       sync.Mutex
	lastSent map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		lastSent: make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Allow reports whether an alert with this key may be sent now, and records
// the send time when it may. Suppression is silent, not queued.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	now := rl.now()
	if last, ok := rl.lastSent[key]; ok && now.Sub(last) < rl.cooldown {
		return false
	}
	rl.lastSent[key] = now
	return true
}

// Start runs the periodic sweep until ctx is cancelled.
func (rl *RateLimiter) Start(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops entries older than twice the cooldown, bounding the map.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-2 * rl.cooldown)
	for key, last := range rl.lastSent {
		if last.Before(cutoff) {
			delete(rl.lastSent, key)
		}
	}
}
