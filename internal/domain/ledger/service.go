package ledger

import "context"

// LedgerService is the overtime ledger ("banca ore").
type LedgerService interface {
	// GetMyBalance returns the caller's balance over a period (default: current year).
	GetMyBalance(ctx context.Context, query BalanceQuery) (BalanceResponse, error)

	// GetUserBalance returns any user's balance (admin, or self).
	GetUserBalance(ctx context.Context, userID string, query BalanceQuery) (BalanceResponse, error)

	// GetBalance computes a balance without authorization checks.
	GetBalance(ctx context.Context, userID string, period Period) (Balance, error)

	// CurrentPeriod is the period used when no range is given.
	CurrentPeriod() Period

	// AddManualCredit applies an admin credit immediately.
	AddManualCredit(ctx context.Context, req ManualCreditRequest) (LedgerEntryResponse, error)

	// ListTransactions returns ledger entries newest first with a running balance.
	ListTransactions(ctx context.Context, filter TransactionFilter) (ListTransactionsResponse, error)

	// ListDebtors returns every scheduled user with balance < threshold.
	ListDebtors(ctx context.Context, threshold float64) ([]Debtor, error)

	// GetDebtSummary aggregates ListDebtors for the admin dashboard.
	GetDebtSummary(ctx context.Context, threshold *float64) (DebtSummaryResponse, error)
}
