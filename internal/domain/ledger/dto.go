package ledger

import (
	"strings"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/validator"
)

// ========================================
// BALANCE DTOs
// ========================================

// BalanceQuery selects the period: a calendar year or an explicit range.
// Empty means the current year.
type BalanceQuery struct {
	Year      *int    `json:"year,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
}

func (q *BalanceQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Year != nil && (*q.Year < 2000 || *q.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if (q.StartDate == nil) != (q.EndDate == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must be provided together",
		})
	}

	if q.StartDate != nil && q.EndDate != nil {
		if q.Year != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "year",
				Message: "year cannot be combined with start_date/end_date",
			})
		}
		start, okStart := validator.IsValidDate(*q.StartDate)
		if !okStart {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
		end, okEnd := validator.IsValidDate(*q.EndDate)
		if !okEnd {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BalanceResponse struct {
	UserID          string        `json:"user_id"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Balance         float64       `json:"balance"`
	Status          BalanceStatus `json:"status"`
	DebtHours       float64       `json:"debt_hours"`
	CreditHours     float64       `json:"credit_hours"`
	AttendanceHours float64       `json:"attendance_hours"`
	ManualCredits   float64       `json:"manual_credits"`
	RecoveryCredits float64       `json:"recovery_credits"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		UserID:          b.UserID,
		StartDate:       b.Period.From.Format("2006-01-02"),
		EndDate:         b.Period.To.Format("2006-01-02"),
		Balance:         b.Balance,
		Status:          b.Status,
		DebtHours:       b.DebtHours,
		CreditHours:     b.CreditHours,
		AttendanceHours: b.AttendanceHours,
		ManualCredits:   b.ManualCredits,
		RecoveryCredits: b.RecoveryCredits,
	}
}

// ========================================
// MANUAL CREDIT DTOs
// ========================================

type ManualCreditRequest struct {
	UserID string  `json:"user_id" validate:"required"`
	Hours  float64 `json:"hours"`
	Date   string  `json:"date" validate:"required,date"` // YYYY-MM-DD
	Reason string  `json:"reason" validate:"max=500"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// CheckAdjustment enforces the ledger rule on manual credits: strictly
// positive hours and a non-empty reason.
func (r *ManualCreditRequest) CheckAdjustment() error {
	if !(r.Hours > 0) || validator.IsEmpty(r.Reason) {
		return ErrInvalidAdjustment
	}
	return nil
}

func (r *ManualCreditRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	return validator.Struct(r)
}

type LedgerEntryResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Date           string    `json:"date"`
	Type           EntryType `json:"type"`
	Hours          float64   `json:"hours"`
	ReferenceType  string    `json:"reference_type"`
	ReferenceID    string    `json:"reference_id"`
	Description    string    `json:"description"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedBy      *string   `json:"created_by,omitempty"`
	CreatedAt      string    `json:"created_at"`
	RunningBalance *float64  `json:"running_balance,omitempty"`
}

func NewLedgerEntryResponse(e LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Date:          e.Date.Format("2006-01-02"),
		Type:          e.Type,
		Hours:         e.Hours,
		ReferenceType: e.ReferenceType,
		ReferenceID:   e.ReferenceID,
		Description:   e.Description,
		Notes:         e.Notes,
		CreatedBy:     e.CreatedBy,
		CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ========================================
// TRANSACTION LOG DTOs
// ========================================

type TransactionFilter struct {
	UserID *string `json:"user_id,omitempty"` // admin only
	BalanceQuery
}

type ListTransactionsResponse struct {
	UserID       string                `json:"user_id"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	TotalCredits float64               `json:"total_credits"`
	Entries      []LedgerEntryResponse `json:"entries"`
}

// ========================================
// DEBT DTOs
// ========================================

type DebtorResponse struct {
	UserID    string  `json:"user_id"`
	Balance   float64 `json:"balance"`
	DebtHours float64 `json:"debt_hours"`
}

type DebtSummaryResponse struct {
	Threshold              float64          `json:"threshold"`
	TotalEmployeesWithDebt int              `json:"total_employees_with_debt"`
	TotalDebtHours         float64          `json:"total_debt_hours"`
	EmployeesWithDebt      []DebtorResponse `json:"employees_with_debt"`
}
