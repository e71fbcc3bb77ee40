package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/repository"
)

// LedgerRepository implements the ledger repository for PostgreSQL.
// Every balance mutation is a single conditional statement or a
// row-locked transaction, so the read-check-write sequences of transfer
// and purchase cannot interleave with concurrent mutations on the same
// account.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetBalance returns the balance, bootstrapping the account if absent.
// The upsert and read are one statement; repeated calls are idempotent.
func (r *LedgerRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	var balance int64
	// The no-op DO UPDATE makes RETURNING yield a row on conflict too.
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING balance
	`, userID).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// AddCoins applies balance += delta atomically, bootstrapping the
// account if absent, and returns the new balance.
func (r *LedgerRepository) AddCoins(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (user_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = users.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`, userID, delta).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("failed to add coins: %w", err)
	}
	return balance, nil
}

// DebitIfSufficient subtracts amount only when the balance covers it.
// The check and the write are one conditional UPDATE.
func (r *LedgerRepository) DebitIfSufficient(ctx context.Context, userID string, amount int64) (bool, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := ensureAccount(ctx, tx, userID); err != nil {
		return false, 0, fmt.Errorf("failed to ensure account: %w", err)
	}

	var balance int64
	err = tx.QueryRow(ctx, `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`, userID, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		// Insufficient funds; report the untouched balance.
		if err := tx.QueryRow(ctx,
			`SELECT balance FROM users WHERE user_id = $1`, userID).Scan(&balance); err != nil {
			return false, 0, fmt.Errorf("failed to read balance: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return false, balance, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("failed to debit account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, balance, nil
}

// ConfiscateUpTo removes min(amount, balance) in one atomic update so a
// stale read can never drive the balance negative. Returns the amount
// seized and the new balance.
func (r *LedgerRepository) ConfiscateUpTo(ctx context.Context, userID string, amount int64) (int64, int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := ensureAccount(ctx, tx, userID); err != nil {
		return 0, 0, fmt.Errorf("failed to ensure account: %w", err)
	}

	var seized, balance int64
	err = tx.QueryRow(ctx, `
		UPDATE users u
		SET balance = u.balance - LEAST(u.balance, $2), updated_at = NOW()
		FROM (SELECT user_id, balance AS prior FROM users WHERE user_id = $1 FOR UPDATE) p
		WHERE u.user_id = p.user_id
		RETURNING p.prior - u.balance, u.balance
	`, userID, amount).Scan(&seized, &balance)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to confiscate coins: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return seized, balance, nil
}

// Transfer moves amount between two accounts in one transaction. Both
// rows are locked in sorted key order so opposite-direction transfers
// cannot deadlock. On insufficient funds nothing is mutated.
func (r *LedgerRepository) Transfer(ctx context.Context, senderID, recipientID string, amount int64) (*domain.TransferResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	first, second := senderID, recipientID
	if second < first {
		first, second = second, first
	}
	for _, id := range []string{first, second} {
		if err := ensureAccount(ctx, tx, id); err != nil {
			return nil, fmt.Errorf("failed to ensure account: %w", err)
		}
	}

	var senderBalance int64
	rows, err := tx.Query(ctx, `
		SELECT user_id, balance FROM users
		WHERE user_id = ANY($1)
		ORDER BY user_id
		FOR UPDATE
	`, []string{first, second})
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	for rows.Next() {
		var id string
		var balance int64
		if err := rows.Scan(&id, &balance); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if id == senderID {
			senderBalance = balance
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	if senderBalance < amount {
		// No mutation; the deferred rollback discards the bootstrap
		// of already-existing rows only, inserts of fresh accounts
		// are re-done on the next touch.
		return &domain.TransferResult{OK: false, SenderBalance: senderBalance}, nil
	}

	if _, err := tx.Exec(ctx, `
		UPDATE users SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
	`, senderID, amount); err != nil {
		return nil, fmt.Errorf("failed to debit sender: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = NOW() WHERE user_id = $1
	`, recipientID, amount); err != nil {
		return nil, fmt.Errorf("failed to credit recipient: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &domain.TransferResult{OK: true, SenderBalance: senderBalance - amount}, nil
}

// TopBalances returns the wealthiest accounts, ties broken by user ID
// for a stable order.
func (r *LedgerRepository) TopBalances(ctx context.Context, limit int) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, balance FROM users
		ORDER BY balance DESC, user_id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.UserID, &a.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return accounts, nil
}
