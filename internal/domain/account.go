package domain

// Account holds one user's coin balance. Accounts are created lazily on
// first reference and never deleted.
type Account struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// TransferResult reports the outcome of a transfer. Insufficient funds
// is an expected outcome, not an error.
type TransferResult struct {
	OK            bool  `json:"ok"`
	SenderBalance int64 `json:"sender_balance"`
}
