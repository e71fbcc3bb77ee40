package repository

import "context"

// Tx defines the minimal transactional contract used by SafeRollback.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
