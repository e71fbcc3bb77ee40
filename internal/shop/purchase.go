package shop

import (
	"context"
	"fmt"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/metrics"
)

// itemLockKey names the per-item lock serializing unique purchases.
func itemLockKey(guildID, name string) string {
	return guildID + ":" + name
}

// Purchase runs the purchase flow: lookup, claim check, affordability
// check, debit, reward grant, finalize. The debit commits before the
// grant runs; a grant failure triggers an unconditional compensating
// credit of the exact cost. For unique items the whole flow holds the
// item's lock so the claim check cannot race a concurrent purchase.
//
// A nil granter defers the reward to the caller, who must call Refund
// if its own grant fails.
func (s *service) Purchase(ctx context.Context, guildID, name, userID string, grant domain.RewardGranter) (*domain.PurchaseResult, error) {
	item, err := s.repo.GetItem(ctx, guildID, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeItemNotFound)).Inc()
		return &domain.PurchaseResult{Outcome: domain.OutcomeItemNotFound}, nil
	}

	if item.Unique {
		lock := s.locks.GetLock(itemLockKey(guildID, name))
		lock.Lock()
		defer lock.Unlock()

		// The pre-lock snapshot may be stale; re-read now that no
		// concurrent purchase of this item can be in flight.
		item, err = s.repo.GetItem(ctx, guildID, name)
		if err != nil {
			return nil, err
		}
		if item == nil {
			metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeItemNotFound)).Inc()
			return &domain.PurchaseResult{Outcome: domain.OutcomeItemNotFound}, nil
		}
		if item.Claimed() {
			metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeAlreadyClaimed)).Inc()
			return &domain.PurchaseResult{Outcome: domain.OutcomeAlreadyClaimed, Item: item}, nil
		}
	}

	return s.executePurchase(ctx, item, userID, grant)
}

func (s *service) executePurchase(ctx context.Context, item *domain.ShopItem, userID string, grant domain.RewardGranter) (*domain.PurchaseResult, error) {
	log := logger.FromContext(ctx)

	ok, balance, err := s.ledger.DebitIfSufficient(ctx, userID, item.Cost)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeInsufficientFunds)).Inc()
		return &domain.PurchaseResult{
			Outcome:    domain.OutcomeInsufficientFunds,
			Item:       item,
			NewBalance: balance,
		}, nil
	}

	// The debit is committed from here on; every failure path below
	// must compensate before returning.
	if grant != nil {
		if gerr := grant(ctx, item.RewardRoleID, userID); gerr != nil {
			log.Warn("Reward grant failed, refunding buyer",
				"guild_id", item.GuildID, "item", item.Name, "user_id", userID, "error", gerr)
			newBalance, rerr := s.refundDebit(ctx, userID, item.Cost)
			if rerr != nil {
				return nil, rerr
			}
			metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeGrantFailed)).Inc()
			return &domain.PurchaseResult{
				Outcome:    domain.OutcomeGrantFailed,
				Item:       item,
				NewBalance: newBalance,
				Refunded:   true,
			}, nil
		}
	}

	if item.Unique {
		claimed, cerr := s.repo.ClaimItem(ctx, item.ID, userID)
		if cerr != nil {
			if _, rerr := s.refundDebit(ctx, userID, item.Cost); rerr != nil {
				return nil, rerr
			}
			return nil, fmt.Errorf("failed to finalize purchase: %w", cerr)
		}
		if !claimed {
			// Lost the claim despite the lock (e.g. a direct API
			// caller raced us); the conditional update is the
			// backstop that keeps at-most-one-owner true.
			newBalance, rerr := s.refundDebit(ctx, userID, item.Cost)
			if rerr != nil {
				return nil, rerr
			}
			metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomeAlreadyClaimed)).Inc()
			return &domain.PurchaseResult{
				Outcome:    domain.OutcomeAlreadyClaimed,
				Item:       item,
				NewBalance: newBalance,
				Refunded:   true,
			}, nil
		}
		item.PurchasedBy = &userID
		s.cache.Invalidate(item.GuildID)
	}

	metrics.PurchasesTotal.WithLabelValues(string(domain.OutcomePurchased)).Inc()
	log.Info("Purchase completed",
		"guild_id", item.GuildID, "item", item.Name, "user_id", userID, "cost", item.Cost)
	return &domain.PurchaseResult{
		Outcome:    domain.OutcomePurchased,
		Item:       item,
		NewBalance: balance,
	}, nil
}

// refundDebit credits back a committed debit. Its own failure is
// surfaced as domain.ErrRefundFailed: the ledger is now inconsistent
// with the external grant outcome and needs operator attention.
func (s *service) refundDebit(ctx context.Context, userID string, cost int64) (int64, error) {
	newBalance, err := s.ledger.AddCoins(ctx, userID, cost)
	if err != nil {
		return 0, fmt.Errorf("%w: crediting %d to %s: %v", domain.ErrRefundFailed, cost, userID, err)
	}
	metrics.RefundsTotal.Inc()
	return newBalance, nil
}

// Refund is the recovery contract for external callers that grant
// rewards themselves: it credits the exact cost back and releases a
// unique-item claim held by the buyer.
func (s *service) Refund(ctx context.Context, guildID, name, userID string) (*domain.RefundResult, error) {
	item, err := s.repo.GetItem(ctx, guildID, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}

	newBalance, err := s.refundDebit(ctx, userID, item.Cost)
	if err != nil {
		return nil, err
	}

	released := false
	if item.Unique {
		released, err = s.repo.ReleaseClaim(ctx, item.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to release claim: %w", err)
		}
		if released {
			s.cache.Invalidate(guildID)
		}
	}

	logger.FromContext(ctx).Info("Purchase refunded",
		"guild_id", guildID, "item", name, "user_id", userID, "amount", item.Cost, "claim_released", released)
	return &domain.RefundResult{
		Refunded:      item.Cost,
		NewBalance:    newBalance,
		ClaimReleased: released,
	}, nil
}
