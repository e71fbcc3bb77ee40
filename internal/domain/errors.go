package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgItemNotFound      = "item not found"
	ErrMsgItemExists        = "item already exists"
	ErrMsgItemClaimed       = "item already claimed"
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"
	ErrMsgRefundFailed      = "refund failed"
	ErrMsgTxClosed          = "tx is closed"
)

// Common domain errors.
// Wrap with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context.
var (
	ErrItemNotFound      = errors.New(ErrMsgItemNotFound)
	ErrItemExists        = errors.New(ErrMsgItemExists)
	ErrItemClaimed       = errors.New(ErrMsgItemClaimed)
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// ErrRefundFailed means a compensating credit could not be
	// applied after a post-debit failure. The ledger is now
	// inconsistent with the external grant outcome and needs
	// operator attention.
	ErrRefundFailed = errors.New(ErrMsgRefundFailed)
)
