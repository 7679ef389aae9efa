package recovery

import (
	"context"
	"time"
)

type RecoveryRepository interface {
	Create(ctx context.Context, r RecoveryRequest) (RecoveryRequest, error)

	// GetByID returns ErrRecoveryNotFound when missing.
	GetByID(ctx context.Context, id string) (RecoveryRequest, error)

	// UpdateDetails rewrites date, window, hours, reason and notes while the
	// request is still pending or proposed. Returns ErrInvalidTransition otherwise.
	UpdateDetails(ctx context.Context, r RecoveryRequest) (RecoveryRequest, error)

	// UpdateStatus moves the request from one status to another only if it
	// still has status from. Returns ErrInvalidTransition otherwise.
	UpdateStatus(ctx context.Context, id string, from, to Status, reviewerID string, reason *string) (RecoveryRequest, error)

	// MarkSettled sets status completed and balance_added only for an approved,
	// unsettled request. settled is false when another caller got there first.
	MarkSettled(ctx context.Context, id string, at time.Time) (r RecoveryRequest, settled bool, err error)

	// Delete removes an unsettled request. Returns ErrImmutableSettlement when
	// the row was settled in the meantime.
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter RecoveryFilter) ([]RecoveryRequest, int64, error)

	// ListDue returns approved, unsettled requests dated on or before day.
	ListDue(ctx context.Context, day time.Time) ([]RecoveryRequest, error)
}
