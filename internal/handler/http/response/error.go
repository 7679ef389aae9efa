package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken),
		errors.Is(err, user.ErrUserIDClaimMissing),
		errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, attendance.ErrUnauthorized),
		errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, recovery.ErrForbidden):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, schedule.ErrWorkScheduleNotFound),
		errors.Is(err, recovery.ErrRecoveryNotFound):
		NotFound(w, err.Error())

	// Recovery workflow
	case errors.Is(err, recovery.ErrImmutableSettlement):
		ErrorWithCode(w, http.StatusConflict, "IMMUTABLE_SETTLEMENT", err.Error(), nil)
	case errors.Is(err, recovery.ErrInvalidTransition):
		ErrorWithCode(w, http.StatusConflict, "INVALID_TRANSITION", err.Error(), nil)
	case errors.Is(err, recovery.ErrCapExceeded):
		ErrorWithCode(w, http.StatusBadRequest, "CAP_EXCEEDED", err.Error(), nil)
	case errors.Is(err, recovery.ErrNoDebt):
		ErrorWithCode(w, http.StatusBadRequest, "NO_DEBT", err.Error(), nil)
	case errors.Is(err, recovery.ErrHoursMismatch):
		ErrorWithCode(w, http.StatusBadRequest, "HOURS_MISMATCH", err.Error(), nil)
	case errors.Is(err, recovery.ErrNotDue):
		ErrorWithCode(w, http.StatusBadRequest, "NOT_DUE", err.Error(), nil)

	// Ledger
	case errors.Is(err, ledger.ErrInvalidAdjustment):
		ErrorWithCode(w, http.StatusBadRequest, "INVALID_ADJUSTMENT", err.Error(), nil)
	case errors.Is(err, ledger.ErrDuplicateReference):
		Conflict(w, err.Error())
	case errors.Is(err, ledger.ErrInvalidPeriod),
		errors.Is(err, attendance.ErrInvalidDateRange),
		errors.Is(err, attendance.ErrDateRangeTooLong):
		BadRequest(w, err.Error(), nil)

	// Time arithmetic
	case errors.Is(err, timecalc.ErrInvalidRange):
		ErrorWithCode(w, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	case errors.Is(err, timecalc.ErrArithmeticOverflow):
		ErrorWithCode(w, http.StatusBadRequest, "ARITHMETIC_OVERFLOW", err.Error(), nil)
	case errors.Is(err, timecalc.ErrInvalidClockFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
