package recovery

import "errors"

var (
	ErrRecoveryNotFound    = errors.New("recovery request not found")
	ErrCapExceeded         = errors.New("requested hours exceed the outstanding debt")
	ErrNoDebt              = errors.New("no outstanding debt to recover")
	ErrImmutableSettlement = errors.New("recovery request already settled into the ledger")
	ErrInvalidTransition   = errors.New("recovery request is not in a state that allows this action")
	ErrHoursMismatch       = errors.New("hours do not match the requested time window")
	ErrForbidden           = errors.New("not allowed to act on this recovery request")
	ErrNotDue              = errors.New("recovery session has not ended yet")
)
