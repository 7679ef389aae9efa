package recovery

import (
	"strings"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/validator"
)

// ========================================
// CREATE / UPDATE DTOs
// ========================================

// CreateRecoveryRequest opens a session. Either end_time or hours must be
// given; when only hours is sent the end time is derived and returned.
type CreateRecoveryRequest struct {
	UserID       *string       `json:"user_id,omitempty"` // admin: target employee
	RecoveryDate string        `json:"recovery_date" validate:"required,date"`
	StartTime    string        `json:"start_time" validate:"required,clock"`
	EndTime      *string       `json:"end_time,omitempty" validate:"omitempty,clock"`
	Hours        *float64      `json:"hours,omitempty" validate:"omitempty,gt=0,lte=24"`
	Reason       string        `json:"reason" validate:"required,max=500"`
	Notes        *string       `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Context      CreateContext `json:"context,omitempty" validate:"omitempty,oneof=debt proposal"`
}

func (r *CreateRecoveryRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.EndTime == nil && r.Hours == nil {
		return validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time or hours is required",
		}}
	}
	return nil
}

type UpdateRecoveryRequest struct {
	ID           string   `json:"-" validate:"required"`
	RecoveryDate string   `json:"recovery_date" validate:"required,date"`
	StartTime    string   `json:"start_time" validate:"required,clock"`
	EndTime      *string  `json:"end_time,omitempty" validate:"omitempty,clock"`
	Hours        *float64 `json:"hours,omitempty" validate:"omitempty,gt=0,lte=24"`
	Reason       string   `json:"reason" validate:"required,max=500"`
	Notes        *string  `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateRecoveryRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.EndTime == nil && r.Hours == nil {
		return validator.ValidationErrors{{
			Field:   "end_time",
			Message: "end_time or hours is required",
		}}
	}
	return nil
}

// ReviewRecoveryRequest carries the optional reason of a rejection.
type ReviewRecoveryRequest struct {
	ID     string  `json:"-" validate:"required"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *ReviewRecoveryRequest) Validate() error {
	return validator.Struct(r)
}

// ========================================
// RESPONSE DTOs
// ========================================

type RecoveryResponse struct {
	ID              string        `json:"id"`
	UserID          string        `json:"user_id"`
	RecoveryDate    string        `json:"recovery_date"`
	StartTime       string        `json:"start_time"`
	EndTime         string        `json:"end_time"`
	Hours           float64       `json:"hours"`
	Reason          string        `json:"reason"`
	Notes           *string       `json:"notes,omitempty"`
	Status          Status        `json:"status"`
	DisplayStatus   string        `json:"display_status,omitempty"`
	BalanceAdded    bool          `json:"balance_added"`
	CreatedBy       CreatedBy     `json:"created_by"`
	Context         CreateContext `json:"context"`
	ReviewedBy      *string       `json:"reviewed_by,omitempty"`
	ReviewedAt      *string       `json:"reviewed_at,omitempty"`
	RejectionReason *string       `json:"rejection_reason,omitempty"`
	SettledAt       *string       `json:"settled_at,omitempty"`
	CreatedAt       string        `json:"created_at"`
	UpdatedAt       string        `json:"updated_at"`
}

// ========================================
// LIST DTOs
// ========================================

type RecoveryFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

var validStatuses = []string{
	string(StatusPending), string(StatusProposed), string(StatusApproved),
	string(StatusRejected), string(StatusCompleted),
}

func (f *RecoveryFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: " + strings.Join(validStatuses, ", "),
		})
	}

	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListRecoveryResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Requests   []RecoveryResponse `json:"requests"`
}

// ========================================
// SETTLEMENT DTOs
// ========================================

type SettleDueResult struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// ========================================
// SLOT DTOs
// ========================================

type SlotRequest struct {
	UserID *string `json:"user_id,omitempty"` // admin: target employee
	Date   string  `json:"date" validate:"required,date"`
	Hours  float64 `json:"hours" validate:"gt=0,lte=12"`
}

func (r *SlotRequest) Validate() error {
	return validator.Struct(r)
}

type SlotResponse struct {
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Hours     float64 `json:"hours"`
}

type SlotsResponse struct {
	Date       string         `json:"date"`
	BreakStart *string        `json:"break_start,omitempty"`
	BreakEnd   *string        `json:"break_end,omitempty"`
	Slots      []SlotResponse `json:"slots"`
}
