package shop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

func TestAddItem_Success(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())

	url := "https://example.com/crown.png"
	item, err := svc.AddItem(ctx, "guild-1", "crown", 500, "role-9", &url, true)
	require.NoError(t, err)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "guild-1", item.GuildID)
	assert.Equal(t, int64(500), item.Cost)
	assert.True(t, item.Unique)
	require.NotNil(t, item.ImageURL)
	assert.Equal(t, url, *item.ImageURL)
}

func TestAddItem_RejectsNonPositiveCost(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())

	for _, cost := range []int64{0, -5} {
		_, err := svc.AddItem(ctx, "guild-1", "crown", cost, "role-9", nil, false)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	}
}

func TestAddItem_DuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())
	seedItem(t, svc, "guild-1", "crown", 100, false)

	_, err := svc.AddItem(ctx, "guild-1", "crown", 200, "role-9", nil, false)
	assert.ErrorIs(t, err, domain.ErrItemExists)
}

func TestAddItem_SameNameDifferentGuilds(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())
	seedItem(t, svc, "guild-1", "crown", 100, false)

	_, err := svc.AddItem(ctx, "guild-2", "crown", 200, "role-9", nil, false)
	assert.NoError(t, err, "item names are scoped per guild")
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())
	seedItem(t, svc, "guild-1", "crown", 100, false)

	removed, err := svc.RemoveItem(ctx, "guild-1", "crown")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = svc.RemoveItem(ctx, "guild-1", "crown")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestListItems_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeShopRepo()
	svc := newTestService(repo, newFakeLedger())
	seedItem(t, svc, "guild-1", "crown", 100, false)

	_, err := svc.ListItems(ctx, "guild-1")
	require.NoError(t, err)
	_, err = svc.ListItems(ctx, "guild-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.listCalls, "second listing must hit the cache")
}

func TestListItems_CacheInvalidatedByWrites(t *testing.T) {
	ctx := context.Background()
	repo := newFakeShopRepo()
	svc := newTestService(repo, newFakeLedger())
	seedItem(t, svc, "guild-1", "crown", 100, false)

	items, err := svc.ListItems(ctx, "guild-1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	seedItem(t, svc, "guild-1", "banner", 50, false)

	items, err = svc.ListItems(ctx, "guild-1")
	require.NoError(t, err)
	assert.Len(t, items, 2, "adding an item must invalidate the listing cache")
}

func TestGetItem_AbsentIsNil(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeShopRepo(), newFakeLedger())

	item, err := svc.GetItem(ctx, "guild-1", "missing")
	require.NoError(t, err)
	assert.Nil(t, item)
}
