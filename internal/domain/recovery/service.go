package recovery

import "context"

// RecoveryService is the recovery-request workflow.
type RecoveryService interface {
	Create(ctx context.Context, req CreateRecoveryRequest) (RecoveryResponse, error)
	Update(ctx context.Context, req UpdateRecoveryRequest) (RecoveryResponse, error)
	Get(ctx context.Context, id string) (RecoveryResponse, error)
	List(ctx context.Context, filter RecoveryFilter) (ListRecoveryResponse, error)

	// Approve and Reject are admin decisions on pending requests.
	Approve(ctx context.Context, id string) (RecoveryResponse, error)
	Reject(ctx context.Context, req ReviewRecoveryRequest) (RecoveryResponse, error)

	// Accept and Decline are the employee's answer to a proposal.
	Accept(ctx context.Context, id string) (RecoveryResponse, error)
	Decline(ctx context.Context, req ReviewRecoveryRequest) (RecoveryResponse, error)

	// Settle credits an elapsed, approved session exactly once.
	Settle(ctx context.Context, id string) (RecoveryResponse, error)

	// SettleDue runs the settlement sweep over every elapsed session.
	SettleDue(ctx context.Context) (SettleDueResult, error)

	Delete(ctx context.Context, id string) error

	// SuggestSlots proposes start/end windows for a session of the given hours.
	SuggestSlots(ctx context.Context, req SlotRequest) (SlotsResponse, error)
}
