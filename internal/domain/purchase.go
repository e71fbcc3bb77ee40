package domain

import "context"

// PurchaseOutcome classifies the result of a purchase attempt. All of
// these are expected business outcomes; callers branch on them to
// produce user-facing messages.
type PurchaseOutcome string

const (
	OutcomePurchased         PurchaseOutcome = "purchased"
	OutcomeItemNotFound      PurchaseOutcome = "item_not_found"
	OutcomeAlreadyClaimed    PurchaseOutcome = "already_claimed"
	OutcomeInsufficientFunds PurchaseOutcome = "insufficient_funds"
	OutcomeGrantFailed       PurchaseOutcome = "grant_failed"
)

// RewardGranter delivers the item's reward to the buyer. It runs after
// the debit has been committed; a non-nil error triggers a compensating
// credit of the full cost. A nil granter means the caller grants the
// reward itself after the purchase returns.
type RewardGranter func(ctx context.Context, rewardRoleID, userID string) error

// PurchaseResult is the outcome of one purchase attempt.
type PurchaseResult struct {
	Outcome    PurchaseOutcome `json:"outcome"`
	Item       *ShopItem       `json:"item,omitempty"`
	NewBalance int64           `json:"new_balance"`
	// Refunded is set when the debit was rolled back by a
	// compensating credit after a post-debit failure.
	Refunded bool `json:"refunded"`
}

// RefundResult reports a compensating refund issued by an external
// caller after its own reward grant failed.
type RefundResult struct {
	Refunded   int64 `json:"refunded"`
	NewBalance int64 `json:"new_balance"`
	// ClaimReleased is set when the refund also released the
	// caller's claim on a unique item.
	ClaimReleased bool `json:"claim_released"`
}
