package repository

import (
	"context"

	"github.com/wrenfall/StarstreamBot_Go/internal/domain"
	"github.com/wrenfall/StarstreamBot_Go/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error. Rolling
// back an already committed transaction is expected and stays quiet.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		if err.Error() == domain.ErrMsgTxClosed {
			return
		}
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
