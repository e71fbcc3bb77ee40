package discord

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGrantTracker(t *testing.T) {
	tracker := &grantTracker{last: make(map[string]time.Time)}
	now := time.Now()

	// First grant goes through and starts the cooldown
	assert.Equal(t, time.Duration(0), tracker.tryAcquire("admin-1", now))

	// A second attempt inside the window reports the remaining wait
	remaining := tracker.tryAcquire("admin-1", now.Add(10*time.Second))
	assert.Equal(t, grantCooldown-10*time.Second, remaining)

	// Other admins are tracked independently
	assert.Equal(t, time.Duration(0), tracker.tryAcquire("admin-2", now))

	// After the cooldown elapses the admin can grant again
	assert.Equal(t, time.Duration(0), tracker.tryAcquire("admin-1", now.Add(grantCooldown+time.Second)))
}
