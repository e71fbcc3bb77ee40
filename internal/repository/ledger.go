package repository

import (
	"context"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
)

// Ledger defines the interface for balance persistence. Every mutation
// is atomic with respect to concurrent mutations on the same account;
// the read-check-write sequences the service layer relies on are folded
// into single conditional statements or row-locked transactions.
type Ledger interface {
	// GetBalance returns the account balance, creating the account
	// with balance 0 if absent. Safe to call repeatedly.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// AddCoins applies balance += delta (delta may be negative) and
	// returns the new balance. Bootstraps the account if absent.
	AddCoins(ctx context.Context, userID string, delta int64) (int64, error)

	// DebitIfSufficient atomically subtracts amount when the balance
	// covers it. Returns (false, current balance) without mutating
	// otherwise.
	DebitIfSufficient(ctx context.Context, userID string, amount int64) (bool, int64, error)

	// ConfiscateUpTo removes min(amount, balance) in one atomic
	// update, returning the amount seized and the new balance. The
	// balance never goes negative.
	ConfiscateUpTo(ctx context.Context, userID string, amount int64) (seized int64, newBalance int64, err error)

	// Transfer atomically moves amount from sender to recipient,
	// bootstrapping the recipient. Insufficient funds is reported in
	// the result, with no mutation performed.
	Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error)

	// TopBalances returns up to limit accounts ordered by balance
	// descending, user ID ascending on ties.
	TopBalances(ctx context.Context, limit int) ([]domain.Account, error)
}
