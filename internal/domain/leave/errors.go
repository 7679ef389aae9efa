package leave

import "errors"

var (
	ErrAmbiguousOverride = errors.New("conflicting full-day overrides for the same date")
	ErrInvalidOverride   = errors.New("invalid override")
)
