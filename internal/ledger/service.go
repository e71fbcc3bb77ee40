package ledger

import (
	"context"
	"fmt"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
	"github.com/wrenfall/StarstreamBot_Go/internal/metrics"
	"github.com/wrenfall/StarstreamBot_Go/internal/repository"
)

// DefaultLeaderboardLimit is used when callers pass a non-positive limit.
const DefaultLeaderboardLimit = 10

// MaxLeaderboardLimit bounds leaderboard queries from untrusted callers.
const MaxLeaderboardLimit = 100

// Service defines the interface for ledger operations. Insufficient
// funds is reported in the TransferResult, never as an error; errors
// are reserved for storage faults.
type Service interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
	Grant(ctx context.Context, userID string, amount int64) (int64, error)
	Confiscate(ctx context.Context, userID string, amount int64) (seized int64, newBalance int64, err error)
	Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.Account, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

// GetBalance returns the account balance, creating the account with
// balance 0 on first reference.
func (s *service) GetBalance(ctx context.Context, userID string) (int64, error) {
	return s.repo.GetBalance(ctx, userID)
}

// Grant mints amount coins into the account. Authorization happens at
// the command layer; the service only guards the amount contract.
func (s *service) Grant(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	balance, err := s.repo.AddCoins(ctx, userID, amount)
	if err != nil {
		return 0, err
	}

	metrics.CoinsMinted.Add(float64(amount))
	logger.FromContext(ctx).Info("Coins granted", "user_id", userID, "amount", amount, "balance", balance)
	return balance, nil
}

// Confiscate removes up to amount coins. The cap to the current balance
// is applied atomically in storage, so the balance never goes negative
// even under concurrent spends.
func (s *service) Confiscate(ctx context.Context, userID string, amount int64) (int64, int64, error) {
	if amount <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	seized, balance, err := s.repo.ConfiscateUpTo(ctx, userID, amount)
	if err != nil {
		return 0, 0, err
	}

	metrics.CoinsConfiscated.Add(float64(seized))
	logger.FromContext(ctx).Info("Coins confiscated",
		"user_id", userID, "requested", amount, "seized", seized, "balance", balance)
	return seized, balance, nil
}

// Transfer moves amount from sender to recipient. The debit and credit
// either both happen or neither does.
func (s *service) Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidAmount, amount)
	}

	result, err := s.repo.Transfer(ctx, senderID, recipientID, amount)
	if err != nil {
		return nil, err
	}

	if result.OK {
		metrics.TransfersTotal.WithLabelValues("ok").Inc()
		logger.FromContext(ctx).Info("Transfer completed",
			"sender_id", senderID, "recipient_id", recipientID, "amount", amount)
	} else {
		metrics.TransfersTotal.WithLabelValues("insufficient_funds").Inc()
	}
	return result, nil
}

// Leaderboard returns the top accounts by balance.
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if limit > MaxLeaderboardLimit {
		limit = MaxLeaderboardLimit
	}
	return s.repo.TopBalances(ctx, limit)
}
