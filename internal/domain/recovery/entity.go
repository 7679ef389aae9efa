package recovery

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusProposed  Status = "proposed"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
)

// CreatedBy records which side opened the request.
type CreatedBy string

const (
	CreatedByEmployee CreatedBy = "employee"
	CreatedByAdmin    CreatedBy = "admin"
)

// CreateContext decides whether the debt cap applies. Admin proposals made
// from the debt view are capped; proposals for extra work are not.
type CreateContext string

const (
	ContextDebt     CreateContext = "debt"
	ContextProposal CreateContext = "proposal"
)

// Action is a workflow step taken by one of the parties.
type Action string

const (
	ActionApprove Action = "approve" // admin, on pending
	ActionReject  Action = "reject"  // admin, on pending
	ActionAccept  Action = "accept"  // employee, on proposed
	ActionDecline Action = "decline" // employee, on proposed
)

type transition struct {
	from Status
	to   Status
}

var transitions = map[Action]transition{
	ActionApprove: {StatusPending, StatusApproved},
	ActionReject:  {StatusPending, StatusRejected},
	ActionAccept:  {StatusProposed, StatusApproved},
	ActionDecline: {StatusProposed, StatusRejected},
}

// RecoveryRequest is one makeup work session. Once BalanceAdded is set the
// ledger has been credited and the row is immutable.
type RecoveryRequest struct {
	ID              string
	UserID          string
	RecoveryDate    time.Time
	StartTime       timecalc.Clock
	EndTime         timecalc.Clock
	Hours           float64
	Reason          string
	Notes           *string
	Status          Status
	BalanceAdded    bool
	CreatedBy       CreatedBy
	Context         CreateContext
	CreatedByUserID *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	SettledAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Next returns the status reached by applying action.
func (r *RecoveryRequest) Next(action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok || r.BalanceAdded || r.Status != t.from {
		return "", ErrInvalidTransition
	}
	return t.to, nil
}

// IsSettled reports whether the ledger was already credited.
func (r *RecoveryRequest) IsSettled() bool {
	return r.BalanceAdded || r.Status == StatusCompleted
}

// CanEdit reports whether date, time and reason may still change.
func (r *RecoveryRequest) CanEdit() error {
	if r.IsSettled() {
		return ErrImmutableSettlement
	}
	if r.Status != StatusPending && r.Status != StatusProposed {
		return ErrInvalidTransition
	}
	return nil
}

// CanDelete allows deletion before settlement only.
func (r *RecoveryRequest) CanDelete() error {
	if r.IsSettled() {
		return ErrImmutableSettlement
	}
	switch r.Status {
	case StatusPending, StatusProposed, StatusApproved:
		return nil
	}
	return ErrInvalidTransition
}

// IsCapped reports whether the request must fit within the user's debt.
func (r *RecoveryRequest) IsCapped() bool {
	return r.CreatedBy == CreatedByEmployee || r.Context != ContextProposal
}

// WindowStart and WindowEnd anchor the session to its date in loc.
func (r *RecoveryRequest) WindowStart(loc *time.Location) time.Time {
	return r.StartTime.On(inLocation(r.RecoveryDate, loc))
}

func (r *RecoveryRequest) WindowEnd(loc *time.Location) time.Time {
	return r.EndTime.On(inLocation(r.RecoveryDate, loc))
}

// IsDue reports whether an approved, unsettled session has ended.
func (r *RecoveryRequest) IsDue(now time.Time, loc *time.Location) bool {
	return r.Status == StatusApproved && !r.BalanceAdded && now.After(r.WindowEnd(loc))
}

// DisplayStatus is the day status shown for the session, empty while it is
// not yet agreed or was rejected.
func (r *RecoveryRequest) DisplayStatus(now time.Time, loc *time.Location) attendance.Status {
	switch {
	case r.IsSettled():
		return attendance.StatusRecoveryCompleted
	case r.Status != StatusApproved:
		return ""
	case now.Before(r.WindowStart(loc)):
		return attendance.StatusRecoveryScheduled
	case now.Before(r.WindowEnd(loc)):
		return attendance.StatusRecoveryActive
	default:
		return attendance.StatusRecoveryCompleted
	}
}

func inLocation(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = d.Location()
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

// Slot is a suggested session window.
type Slot struct {
	StartTime timecalc.Clock
	EndTime   timecalc.Clock
	Hours     float64
}
