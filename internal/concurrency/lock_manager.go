package concurrency

import (
	"sync"
)

// LockManager handles named locks. The shop uses it to serialize the
// whole purchase flow of a unique item under a guild:name key.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Locks are never evicted; the key space (one per unique shop item) is
// small and bounded by the catalog.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
