package repository

import (
	"context"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// Shop defines the interface for guild-scoped item persistence.
type Shop interface {
	// InsertItem creates the item and fills item.ID. Returns
	// domain.ErrItemExists when (guild_id, name) is taken.
	InsertItem(ctx context.Context, item *domain.ShopItem) error

	// DeleteItem removes the item, reporting whether one existed.
	DeleteItem(ctx context.Context, guildID, name string) (bool, error)

	// GetItem returns the item, or nil when absent.
	GetItem(ctx context.Context, guildID, name string) (*domain.ShopItem, error)

	// ListItems returns the guild's items ordered by ascending cost.
	ListItems(ctx context.Context, guildID string) ([]domain.ShopItem, error)

	// ClaimItem sets purchased_by only if the item is currently
	// unclaimed. Reports whether this call won the claim.
	ClaimItem(ctx context.Context, itemID int64, userID string) (bool, error)

	// ReleaseClaim clears purchased_by only if held by userID.
	// Reports whether a claim was released.
	ReleaseClaim(ctx context.Context, itemID int64, userID string) (bool, error)
}
