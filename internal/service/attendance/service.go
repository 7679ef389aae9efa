package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	schedule.WorkScheduleRepository
	leave.OverrideRepository
	loc *time.Location
	now func() time.Time
}

// GetMyStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyStatus(ctx context.Context, req attendance.StatusRequest) (attendance.StatusResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	return a.statusFor(ctx, actor.UserID, req)
}

// GetUserStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetUserStatus(ctx context.Context, userID string, req attendance.StatusRequest) (attendance.StatusResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if !actor.CanAccess(userID) {
		return attendance.StatusResponse{}, attendance.ErrUnauthorized
	}
	return a.statusFor(ctx, userID, req)
}

func (a *AttendanceServiceImpl) statusFor(ctx context.Context, userID string, req attendance.StatusRequest) (attendance.StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StatusResponse{}, err
	}

	now := a.now().In(a.loc)
	date := now
	if req.Date != nil {
		parsed, _ := time.Parse("2006-01-02", *req.Date)
		date = a.localDay(parsed)
	}

	result, err := a.ComputeDay(ctx, userID, date, now)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	return attendance.StatusResponse{
		UserID:        userID,
		Date:          result.Date.Format("2006-01-02"),
		Status:        result.Status,
		ExpectedHours: result.ExpectedHours,
		ActualHours:   result.ActualHours,
		BalanceHours:  result.BalanceHours,
		Ambiguous:     result.Ambiguous,
		ComputedAt:    now.Format(time.RFC3339),
	}, nil
}

// ListDays implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListDays(ctx context.Context, filter attendance.DayRangeFilter) (attendance.ListDaysResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListDaysResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return attendance.ListDaysResponse{}, err
	}
	userID := actor.UserID
	if filter.UserID != nil && *filter.UserID != "" {
		userID = *filter.UserID
	}
	if !actor.CanAccess(userID) {
		return attendance.ListDaysResponse{}, attendance.ErrUnauthorized
	}

	from, _ := time.Parse("2006-01-02", filter.StartDate)
	to, _ := time.Parse("2006-01-02", filter.EndDate)

	results, err := a.ComputeRange(ctx, userID, a.localDay(from), a.localDay(to), a.now())
	if err != nil {
		return attendance.ListDaysResponse{}, err
	}

	resp := attendance.ListDaysResponse{
		UserID:    userID,
		StartDate: filter.StartDate,
		EndDate:   filter.EndDate,
		Days:      make([]attendance.DayResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.TotalExpected += r.ExpectedHours
		resp.TotalActual += r.ActualHours
		resp.TotalBalance += r.BalanceHours
		resp.Days = append(resp.Days, attendance.DayResponse{
			Date:          r.Date.Format("2006-01-02"),
			Status:        r.Status,
			ExpectedHours: r.ExpectedHours,
			ActualHours:   r.ActualHours,
			BalanceHours:  r.BalanceHours,
			Ambiguous:     r.Ambiguous,
		})
	}
	resp.TotalExpected = timecalc.RoundHours(resp.TotalExpected)
	resp.TotalActual = timecalc.RoundHours(resp.TotalActual)
	resp.TotalBalance = timecalc.RoundHours(resp.TotalBalance)

	return resp, nil
}

// ComputeDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ComputeDay(ctx context.Context, userID string, date time.Time, now time.Time) (attendance.StatusResult, error) {
	result, _, err := a.computeDay(ctx, userID, date, now)
	return result, err
}

func (a *AttendanceServiceImpl) computeDay(ctx context.Context, userID string, date time.Time, now time.Time) (attendance.StatusResult, *attendance.AttendanceRecord, error) {
	date = a.localDay(date)
	now = now.In(a.loc)

	ws, err := a.WorkScheduleRepository.GetByUserAndDay(ctx, userID, date.Weekday())
	if err != nil {
		return attendance.StatusResult{}, nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	overrides, err := a.OverrideRepository.GetApprovedOverrides(ctx, userID, date)
	if err != nil {
		return attendance.StatusResult{}, nil, fmt.Errorf("failed to get approved overrides: %w", err)
	}
	resolution := a.resolve(userID, date, overrides)

	record, err := a.AttendanceRepository.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return attendance.StatusResult{}, nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	result := ComputeStatus(DayInput{
		Date:      date,
		Now:       now,
		Schedule:  ws,
		Overrides: resolution,
		Record:    record,
	})
	return result, record, nil
}

// ComputeRange implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ComputeRange(ctx context.Context, userID string, from, to time.Time, now time.Time) ([]attendance.StatusResult, error) {
	from, to = a.localDay(from), a.localDay(to)
	if to.Before(from) {
		return nil, attendance.ErrInvalidDateRange
	}
	now = now.In(a.loc)

	schedules, err := a.WorkScheduleRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work schedules: %w", err)
	}
	byDay := make(map[time.Weekday]*schedule.WorkSchedule, len(schedules))
	for i := range schedules {
		byDay[schedules[i].DayOfWeek] = &schedules[i]
	}

	overrides, err := a.OverrideRepository.ListApprovedOverrides(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved overrides: %w", err)
	}

	records, err := a.AttendanceRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	byDate := make(map[string]*attendance.AttendanceRecord, len(records))
	for i := range records {
		byDate[records[i].Date.Format("2006-01-02")] = &records[i]
	}

	var results []attendance.StatusResult
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		results = append(results, ComputeStatus(DayInput{
			Date:      d,
			Now:       now,
			Schedule:  byDay[d.Weekday()],
			Overrides: a.resolve(userID, d, overrides),
			Record:    byDate[d.Format("2006-01-02")],
		}))
	}
	return results, nil
}

// FinalizeDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) FinalizeDay(ctx context.Context, date time.Time) (attendance.FinalizeResult, error) {
	date = a.localDay(date)
	now := a.now().In(a.loc)
	res := attendance.FinalizeResult{Date: date.Format("2006-01-02")}

	if !date.Before(a.localDay(now)) {
		return res, fmt.Errorf("cannot finalize %s: day is not over", res.Date)
	}

	userIDs, err := a.WorkScheduleRepository.ListUserIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list scheduled users: %w", err)
	}

	for _, userID := range userIDs {
		result, record, err := a.computeDay(ctx, userID, date, now)
		if err != nil {
			slog.Error("Failed to compute attendance day", "user_id", userID, "date", res.Date, "error", err)
			res.Failed++
			continue
		}
		if record == nil && result.Status == attendance.StatusNonWorkingDay {
			continue
		}

		_, err = a.AttendanceRepository.UpsertComputed(ctx, attendance.AttendanceRecord{
			UserID:        userID,
			Date:          date,
			ExpectedHours: result.ExpectedHours,
			ActualHours:   result.ActualHours,
			BalanceHours:  result.BalanceHours,
			Status:        result.Status,
			IsVacation:    result.Status == attendance.StatusVacation,
		})
		if err != nil {
			slog.Error("Failed to store attendance day", "user_id", userID, "date", res.Date, "error", err)
			res.Failed++
			continue
		}
		res.Processed++
	}

	slog.Info("Finalized attendance day", "date", res.Date, "processed", res.Processed, "failed", res.Failed)
	return res, nil
}

// resolve ranks overrides and reports conflicting full-day overrides without
// failing the computation.
func (a *AttendanceServiceImpl) resolve(userID string, date time.Time, overrides []leave.Override) leave.Resolution {
	resolution, err := leave.Resolve(date, overrides)
	if err != nil {
		if errors.Is(err, leave.ErrAmbiguousOverride) {
			slog.Warn("Ambiguous day overrides", "user_id", userID, "winner", resolution.FullDay, "error", err)
		}
	}
	return resolution
}

// localDay moves a calendar date to midnight in the service location.
func (a *AttendanceServiceImpl) localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, a.loc)
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	overrideRepo leave.OverrideRepository,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		AttendanceRepository:   attendanceRepo,
		WorkScheduleRepository: workScheduleRepo,
		OverrideRepository:     overrideRepo,
		loc:                    loc,
		now:                    time.Now,
	}
}
