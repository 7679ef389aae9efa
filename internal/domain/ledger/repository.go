package ledger

import (
	"context"
	"time"
)

type LedgerRepository interface {
	// AppendEntry inserts entry unless its reference was already credited.
	// inserted is false when the reference exists; the stored entry is then not returned.
	AppendEntry(ctx context.Context, entry LedgerEntry) (created LedgerEntry, inserted bool, err error)

	// SumCredits totals entries with from <= date <= to by type.
	SumCredits(ctx context.Context, userID string, from, to time.Time) (Credits, error)

	// ListByUser returns entries with from <= date <= to, newest first.
	ListByUser(ctx context.Context, userID string, from, to time.Time) ([]LedgerEntry, error)

	// GetByReference returns nil, nil when nothing was credited for the reference.
	GetByReference(ctx context.Context, referenceType, referenceID string) (*LedgerEntry, error)
}
