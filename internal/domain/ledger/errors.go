package ledger

import "errors"

var (
	ErrInvalidAdjustment  = errors.New("invalid adjustment: hours must be positive and a reason is required")
	ErrDuplicateReference = errors.New("ledger entry already exists for this reference")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrUnauthorized       = errors.New("unauthorized to access this ledger")
)
