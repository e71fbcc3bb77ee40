package shop

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// Listing cache defaults. Listings feed autocomplete, which fires on
// every keystroke; a short TTL keeps the display fresh enough while the
// purchase path always reads storage directly.
const (
	cacheSize = 256
	cacheTTL  = 30 * time.Second
)

// listCache is an in-memory LRU of per-guild item listings with
// time-based expiration. Mutating operations invalidate the guild's
// entry explicitly.
type listCache struct {
	lru *expirable.LRU[string, []domain.ShopItem]
}

func newListCache(size int, ttl time.Duration) *listCache {
	return &listCache{
		lru: expirable.NewLRU[string, []domain.ShopItem](size, nil, ttl),
	}
}

// Get retrieves a guild's cached listing.
func (c *listCache) Get(guildID string) ([]domain.ShopItem, bool) {
	return c.lru.Get(guildID)
}

// Set stores a guild's listing.
func (c *listCache) Set(guildID string, items []domain.ShopItem) {
	c.lru.Add(guildID, items)
}

// Invalidate drops a guild's listing after a catalog mutation.
func (c *listCache) Invalidate(guildID string) {
	c.lru.Remove(guildID)
}
