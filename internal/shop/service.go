package shop

import (
	"context"
	"fmt"

	"github.com/wrenfall/StarstreamBot_Go/internal/concurrency"
	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/repository"
)

// Service defines the interface for shop operations. Expected business
// outcomes (duplicate name, item absent, already claimed, insufficient
// funds) are values; errors are reserved for storage faults.
type Service interface {
	AddItem(ctx context.Context, guildID, name string, cost int64, rewardRoleID string, imageURL *string, unique bool) (*domain.ShopItem, error)
	RemoveItem(ctx context.Context, guildID, name string) (bool, error)
	GetItem(ctx context.Context, guildID, name string) (*domain.ShopItem, error)
	ListItems(ctx context.Context, guildID string) ([]domain.ShopItem, error)
	Purchase(ctx context.Context, guildID, name, userID string, grant domain.RewardGranter) (*domain.PurchaseResult, error)
	Refund(ctx context.Context, guildID, name, userID string) (*domain.RefundResult, error)
}

type service struct {
	repo   repository.Shop
	ledger repository.Ledger
	locks  *concurrency.LockManager
	cache  *listCache
}

// NewService creates a new shop service
func NewService(repo repository.Shop, ledger repository.Ledger, locks *concurrency.LockManager) Service {
	return &service{
		repo:   repo,
		ledger: ledger,
		locks:  locks,
		cache:  newListCache(cacheSize, cacheTTL),
	}
}

// AddItem creates an item. Returns domain.ErrItemExists when the name
// is taken within the guild; names in different guilds never conflict.
func (s *service) AddItem(ctx context.Context, guildID, name string, cost int64, rewardRoleID string, imageURL *string, unique bool) (*domain.ShopItem, error) {
	if cost <= 0 {
		return nil, fmt.Errorf("%w: cost %d", domain.ErrInvalidAmount, cost)
	}

	item := &domain.ShopItem{
		GuildID:      guildID,
		Name:         name,
		Cost:         cost,
		RewardRoleID: rewardRoleID,
		ImageURL:     imageURL,
		Unique:       unique,
	}
	if err := s.repo.InsertItem(ctx, item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(guildID)
	logger.FromContext(ctx).Info("Shop item added",
		"guild_id", guildID, "item", name, "cost", cost, "unique", unique)
	return item, nil
}

// RemoveItem deletes an item, reporting whether one existed. Balances
// are untouched.
func (s *service) RemoveItem(ctx context.Context, guildID, name string) (bool, error) {
	removed, err := s.repo.DeleteItem(ctx, guildID, name)
	if err != nil {
		return false, err
	}
	if removed {
		s.cache.Invalidate(guildID)
		logger.FromContext(ctx).Info("Shop item removed", "guild_id", guildID, "item", name)
	}
	return removed, nil
}

// GetItem returns the item, or nil when absent. Reads storage directly;
// only listings are cached.
func (s *service) GetItem(ctx context.Context, guildID, name string) (*domain.ShopItem, error) {
	return s.repo.GetItem(ctx, guildID, name)
}

// ListItems returns the guild's items ordered by ascending cost,
// served from the listing cache when fresh.
func (s *service) ListItems(ctx context.Context, guildID string) ([]domain.ShopItem, error) {
	if items, ok := s.cache.Get(guildID); ok {
		return items, nil
	}

	items, err := s.repo.ListItems(ctx, guildID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(guildID, items)
	return items, nil
}
