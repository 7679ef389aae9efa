package attendance

import (
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/validator"
)

// ========================================
// STATUS DTOs
// ========================================

type StatusRequest struct {
	Date *string `json:"date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *StatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type StatusResponse struct {
	UserID        string  `json:"user_id"`
	Date          string  `json:"date"`
	Status        Status  `json:"status"`
	ExpectedHours float64 `json:"expected_hours"`
	ActualHours   float64 `json:"actual_hours"`
	BalanceHours  float64 `json:"balance_hours"`
	Ambiguous     bool    `json:"ambiguous,omitempty"`
	ComputedAt    string  `json:"computed_at"`
}

// ========================================
// DAY RANGE DTOs
// ========================================

const maxRangeDays = 366

type DayRangeFilter struct {
	UserID    *string `json:"user_id,omitempty"` // admin only
	StartDate string  `json:"start_date"`        // YYYY-MM-DD
	EndDate   string  `json:"end_date"`          // YYYY-MM-DD
}

func (f *DayRangeFilter) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrInvalidDateRange.Error(),
			})
		} else if end.Sub(start) > maxRangeDays*24*time.Hour {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: ErrDateRangeTooLong.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DayResponse struct {
	Date          string  `json:"date"`
	Status        Status  `json:"status"`
	ExpectedHours float64 `json:"expected_hours"`
	ActualHours   float64 `json:"actual_hours"`
	BalanceHours  float64 `json:"balance_hours"`
	Ambiguous     bool    `json:"ambiguous,omitempty"`
}

type ListDaysResponse struct {
	UserID        string        `json:"user_id"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	TotalExpected float64       `json:"total_expected_hours"`
	TotalActual   float64       `json:"total_actual_hours"`
	TotalBalance  float64       `json:"total_balance_hours"`
	Days          []DayResponse `json:"days"`
}

// FinalizeResult reports the outcome of a daily finalizer run.
type FinalizeResult struct {
	Date      string `json:"date"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}
