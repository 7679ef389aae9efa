package leave

import (
	"context"
	"time"
)

// OverrideRepository is the Leave/Permission Provider. Leave requests are
// created and approved elsewhere; only approved rows are returned.
type OverrideRepository interface {
	// GetApprovedOverrides returns approved overrides touching date.
	GetApprovedOverrides(ctx context.Context, userID string, date time.Time) ([]Override, error)
	// ListApprovedOverrides returns approved overrides touching [from, to].
	ListApprovedOverrides(ctx context.Context, userID string, from, to time.Time) ([]Override, error)
}
