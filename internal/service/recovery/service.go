package recovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/validator"
)

// Config holds the workflow tunables.
type Config struct {
	// HoursTolerance is the allowed gap between declared hours and the window.
	HoursTolerance float64
	// SlotFirst and SlotLast bound the hourly start times of suggested slots.
	SlotFirst timecalc.Clock
	SlotLast  timecalc.Clock
}

type RecoveryServiceImpl struct {
	txManager database.TxManager
	recovery.RecoveryRepository
	ledger.LedgerRepository
	schedule.WorkScheduleRepository
	ledgerService ledger.LedgerService
	cfg           Config
	loc           *time.Location
	now           func() time.Time
}

// Create implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Create(ctx context.Context, req recovery.CreateRecoveryRequest) (recovery.RecoveryResponse, error) {
	if err := req.Validate(); err != nil {
		return recovery.RecoveryResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	r := recovery.RecoveryRequest{
		Reason:          req.Reason,
		Notes:           req.Notes,
		CreatedByUserID: &actor.UserID,
	}
	if actor.IsAdmin() {
		if req.UserID == nil || *req.UserID == "" {
			return recovery.RecoveryResponse{}, validator.ValidationErrors{
				{Field: "user_id", Message: "user_id is required when an admin creates a request"},
			}
		}
		r.UserID = *req.UserID
		r.Status = recovery.StatusProposed
		r.CreatedBy = recovery.CreatedByAdmin
		r.Context = recovery.ContextDebt
		if req.Context != "" {
			r.Context = req.Context
		}
	} else {
		if req.UserID != nil && *req.UserID != "" && *req.UserID != actor.UserID {
			return recovery.RecoveryResponse{}, recovery.ErrForbidden
		}
		r.UserID = actor.UserID
		r.Status = recovery.StatusPending
		r.CreatedBy = recovery.CreatedByEmployee
		r.Context = recovery.ContextDebt
	}

	if err := s.applyWindow(ctx, &r, req.RecoveryDate, req.StartTime, req.EndTime, req.Hours); err != nil {
		return recovery.RecoveryResponse{}, err
	}
	if err := s.checkCap(ctx, r); err != nil {
		return recovery.RecoveryResponse{}, err
	}

	created, err := s.RecoveryRepository.Create(ctx, r)
	if err != nil {
		return recovery.RecoveryResponse{}, fmt.Errorf("failed to create recovery request: %w", err)
	}

	slog.Info("Recovery request created", "recovery_id", created.ID, "user_id", created.UserID, "hours", created.Hours, "status", created.Status, "created_by", created.CreatedBy)
	return s.toResponse(created), nil
}

// Update implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Update(ctx context.Context, req recovery.UpdateRecoveryRequest) (recovery.RecoveryResponse, error) {
	if err := req.Validate(); err != nil {
		return recovery.RecoveryResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	existing, err := s.RecoveryRepository.GetByID(ctx, req.ID)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}
	if !actor.CanAccess(existing.UserID) {
		return recovery.RecoveryResponse{}, recovery.ErrForbidden
	}
	if err := existing.CanEdit(); err != nil {
		return recovery.RecoveryResponse{}, err
	}

	existing.Reason = req.Reason
	existing.Notes = req.Notes
	if err := s.applyWindow(ctx, &existing, req.RecoveryDate, req.StartTime, req.EndTime, req.Hours); err != nil {
		return recovery.RecoveryResponse{}, err
	}
	if err := s.checkCap(ctx, existing); err != nil {
		return recovery.RecoveryResponse{}, err
	}

	updated, err := s.RecoveryRepository.UpdateDetails(ctx, existing)
	if err != nil {
		return recovery.RecoveryResponse{}, fmt.Errorf("failed to update recovery request: %w", err)
	}
	return s.toResponse(updated), nil
}

// Get implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Get(ctx context.Context, id string) (recovery.RecoveryResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	r, err := s.RecoveryRepository.GetByID(ctx, id)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}
	if !actor.CanAccess(r.UserID) {
		return recovery.RecoveryResponse{}, recovery.ErrForbidden
	}
	return s.toResponse(r), nil
}

// List implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) List(ctx context.Context, filter recovery.RecoveryFilter) (recovery.ListRecoveryResponse, error) {
	if err := filter.Validate(); err != nil {
		return recovery.ListRecoveryResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.ListRecoveryResponse{}, err
	}
	if !actor.IsAdmin() {
		filter.UserID = &actor.UserID
	}

	rows, total, err := s.RecoveryRepository.List(ctx, filter)
	if err != nil {
		return recovery.ListRecoveryResponse{}, fmt.Errorf("failed to list recovery requests: %w", err)
	}

	resp := recovery.ListRecoveryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   make([]recovery.RecoveryResponse, 0, len(rows)),
	}
	for _, r := range rows {
		resp.Requests = append(resp.Requests, s.toResponse(r))
	}
	return resp, nil
}

// Approve implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Approve(ctx context.Context, id string) (recovery.RecoveryResponse, error) {
	return s.review(ctx, id, recovery.ActionApprove, nil)
}

// Reject implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Reject(ctx context.Context, req recovery.ReviewRecoveryRequest) (recovery.RecoveryResponse, error) {
	if err := req.Validate(); err != nil {
		return recovery.RecoveryResponse{}, err
	}
	return s.review(ctx, req.ID, recovery.ActionReject, req.Reason)
}

// Accept implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Accept(ctx context.Context, id string) (recovery.RecoveryResponse, error) {
	return s.review(ctx, id, recovery.ActionAccept, nil)
}

// Decline implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Decline(ctx context.Context, req recovery.ReviewRecoveryRequest) (recovery.RecoveryResponse, error) {
	if err := req.Validate(); err != nil {
		return recovery.RecoveryResponse{}, err
	}
	return s.review(ctx, req.ID, recovery.ActionDecline, req.Reason)
}

// review applies a workflow action. Admins decide on pending requests; the
// target employee answers proposals.
func (s *RecoveryServiceImpl) review(ctx context.Context, id string, action recovery.Action, reason *string) (recovery.RecoveryResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	r, err := s.RecoveryRepository.GetByID(ctx, id)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	switch action {
	case recovery.ActionApprove, recovery.ActionReject:
		if !actor.IsAdmin() {
			return recovery.RecoveryResponse{}, recovery.ErrForbidden
		}
	case recovery.ActionAccept, recovery.ActionDecline:
		if actor.UserID != r.UserID {
			return recovery.RecoveryResponse{}, recovery.ErrForbidden
		}
	}

	next, err := r.Next(action)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	updated, err := s.RecoveryRepository.UpdateStatus(ctx, r.ID, r.Status, next, actor.UserID, reason)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	slog.Info("Recovery request reviewed", "recovery_id", r.ID, "action", action, "status", updated.Status, "by", actor.UserID)
	return s.toResponse(updated), nil
}

// Settle implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Settle(ctx context.Context, id string) (recovery.RecoveryResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}
	if !actor.IsAdmin() {
		return recovery.RecoveryResponse{}, user.ErrAdminPrivilegeRequired
	}

	r, err := s.RecoveryRepository.GetByID(ctx, id)
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}

	settled, err := s.settle(ctx, r, s.now())
	if err != nil {
		return recovery.RecoveryResponse{}, err
	}
	return s.toResponse(settled), nil
}

// settle moves an elapsed approved request to completed and credits the
// ledger in one transaction. Settling an already settled request returns it
// unchanged.
func (s *RecoveryServiceImpl) settle(ctx context.Context, r recovery.RecoveryRequest, now time.Time) (recovery.RecoveryRequest, error) {
	if r.IsSettled() {
		return r, nil
	}
	if r.Status != recovery.StatusApproved {
		return recovery.RecoveryRequest{}, recovery.ErrInvalidTransition
	}
	if !r.IsDue(now, s.loc) {
		return recovery.RecoveryRequest{}, recovery.ErrNotDue
	}

	var result recovery.RecoveryRequest
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		marked, ok, err := s.RecoveryRepository.MarkSettled(txCtx, r.ID, now)
		if err != nil {
			return fmt.Errorf("failed to mark recovery request settled: %w", err)
		}
		if !ok {
			// another sweep or admin got there first
			current, err := s.RecoveryRepository.GetByID(txCtx, r.ID)
			if err != nil {
				return err
			}
			if !current.IsSettled() {
				return recovery.ErrInvalidTransition
			}
			result = current
			return nil
		}

		_, inserted, err := s.LedgerRepository.AppendEntry(txCtx, ledger.LedgerEntry{
			UserID:        marked.UserID,
			Date:          marked.RecoveryDate,
			Type:          ledger.EntryTypeRecoverySettlement,
			Hours:         marked.Hours,
			ReferenceType: ledger.ReferenceRecoveryRequest,
			ReferenceID:   marked.ID,
			Description:   fmt.Sprintf("Recovery %s %s-%s", marked.RecoveryDate.Format("2006-01-02"), marked.StartTime, marked.EndTime),
		})
		if err != nil {
			return fmt.Errorf("failed to credit ledger: %w", err)
		}
		if !inserted {
			existing, err := s.LedgerRepository.GetByReference(txCtx, ledger.ReferenceRecoveryRequest, marked.ID)
			if err != nil {
				return fmt.Errorf("failed to get existing ledger entry: %w", err)
			}
			if existing == nil {
				return fmt.Errorf("ledger entry for recovery %s neither inserted nor found", marked.ID)
			}
			slog.Warn("Recovery already credited in ledger, flag repaired",
				"recovery_id", marked.ID, "user_id", marked.UserID, "entry_id", existing.ID, "hours", existing.Hours)
		}

		result = marked
		return nil
	})
	if err != nil {
		return recovery.RecoveryRequest{}, err
	}

	slog.Info("Recovery request settled", "recovery_id", result.ID, "user_id", result.UserID, "hours", result.Hours)
	return result, nil
}

// SettleDue implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) SettleDue(ctx context.Context) (recovery.SettleDueResult, error) {
	now := s.now().In(s.loc)
	var res recovery.SettleDueResult

	due, err := s.RecoveryRepository.ListDue(ctx, now)
	if err != nil {
		return res, fmt.Errorf("failed to list due recovery requests: %w", err)
	}

	for _, r := range due {
		if !r.IsDue(now, s.loc) {
			res.Skipped++
			continue
		}
		if _, err := s.settle(ctx, r, now); err != nil {
			slog.Error("Failed to settle recovery request", "recovery_id", r.ID, "user_id", r.UserID, "error", err)
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", r.ID, err))
			continue
		}
		res.Processed++
	}

	if res.Processed > 0 || res.Failed > 0 {
		slog.Info("Recovery settlement sweep finished", "processed", res.Processed, "skipped", res.Skipped, "failed", res.Failed)
	}
	return res, nil
}

// Delete implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) Delete(ctx context.Context, id string) error {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return err
	}

	r, err := s.RecoveryRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(r.UserID) {
		return recovery.ErrForbidden
	}
	if err := r.CanDelete(); err != nil {
		return err
	}

	if err := s.RecoveryRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Recovery request deleted", "recovery_id", id, "user_id", r.UserID, "by", actor.UserID)
	return nil
}

// SuggestSlots implements recovery.RecoveryService.
func (s *RecoveryServiceImpl) SuggestSlots(ctx context.Context, req recovery.SlotRequest) (recovery.SlotsResponse, error) {
	if err := req.Validate(); err != nil {
		return recovery.SlotsResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return recovery.SlotsResponse{}, err
	}
	userID := actor.UserID
	if req.UserID != nil && *req.UserID != "" {
		userID = *req.UserID
	}
	if !actor.CanAccess(userID) {
		return recovery.SlotsResponse{}, recovery.ErrForbidden
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	bw, err := s.breakWindow(ctx, userID, date)
	if err != nil {
		return recovery.SlotsResponse{}, err
	}

	resp := recovery.SlotsResponse{
		Date:  req.Date,
		Slots: []recovery.SlotResponse{},
	}
	if !bw.IsZero() {
		start, end := bw.Start.String(), bw.End().String()
		resp.BreakStart, resp.BreakEnd = &start, &end
	}
	for _, slot := range SuggestSlots(req.Hours, bw, s.cfg.SlotFirst, s.cfg.SlotLast) {
		resp.Slots = append(resp.Slots, recovery.SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Hours:     slot.Hours,
		})
	}
	return resp, nil
}

// SuggestSlots enumerates hourly start times in [first, last], skipping
// starts inside the break and sessions that would not end the same day.
func SuggestSlots(hours float64, bw timecalc.BreakWindow, first, last timecalc.Clock) []recovery.Slot {
	var slots []recovery.Slot
	for start := first; start <= last; start += 60 {
		if bw.Contains(start) {
			continue
		}
		end, err := timecalc.AddWorkDuration(start, hours, bw)
		if err != nil {
			continue
		}
		slots = append(slots, recovery.Slot{
			StartTime: start,
			EndTime:   end,
			Hours:     timecalc.MinutesToHours(timecalc.HoursToMinutes(hours)),
		})
	}
	return slots
}

// applyWindow validates the date and time window of r and fills EndTime and
// Hours. When only hours are given the end is derived through the break.
func (s *RecoveryServiceImpl) applyWindow(ctx context.Context, r *recovery.RecoveryRequest, dateStr, startStr string, endStr *string, hours *float64) error {
	date, _ := time.Parse("2006-01-02", dateStr)
	start, _ := timecalc.ParseClock(startStr)

	bw, err := s.breakWindow(ctx, r.UserID, date)
	if err != nil {
		return err
	}

	var end timecalc.Clock
	if endStr != nil {
		end, _ = timecalc.ParseClock(*endStr)
	} else {
		end, err = timecalc.AddWorkDuration(start, *hours, bw)
		if err != nil {
			return err
		}
	}

	netMinutes, err := timecalc.NetWorkedMinutes(start, end, bw)
	if err != nil {
		return err
	}
	if netMinutes <= 0 {
		return fmt.Errorf("%w: %s-%s contains no working time", timecalc.ErrInvalidRange, start, end)
	}
	net := timecalc.MinutesToHours(netMinutes)

	if hours != nil && endStr != nil && math.Abs(*hours-net) > s.cfg.HoursTolerance+1e-9 {
		return fmt.Errorf("%w: %.2fh declared, %s-%s is %.2fh", recovery.ErrHoursMismatch, *hours, start, end, net)
	}

	r.RecoveryDate = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	r.StartTime = start
	r.EndTime = end
	r.Hours = net
	return nil
}

// checkCap enforces hours <= outstanding debt for capped requests.
func (s *RecoveryServiceImpl) checkCap(ctx context.Context, r recovery.RecoveryRequest) error {
	if !r.IsCapped() {
		return nil
	}

	balance, err := s.ledgerService.GetBalance(ctx, r.UserID, s.ledgerService.CurrentPeriod())
	if err != nil {
		return fmt.Errorf("failed to get ledger balance: %w", err)
	}
	if !balance.InDebt() {
		return fmt.Errorf("%w: %w", recovery.ErrCapExceeded, recovery.ErrNoDebt)
	}
	if r.Hours > balance.DebtHours+1e-9 {
		return fmt.Errorf("%w: %.2fh requested, %.2fh owed", recovery.ErrCapExceeded, r.Hours, balance.DebtHours)
	}
	return nil
}

func (s *RecoveryServiceImpl) breakWindow(ctx context.Context, userID string, date time.Time) (timecalc.BreakWindow, error) {
	ws, err := s.WorkScheduleRepository.GetByUserAndDay(ctx, userID, date.Weekday())
	if err != nil && !errors.Is(err, schedule.ErrWorkScheduleNotFound) {
		return timecalc.NoBreak, fmt.Errorf("failed to get work schedule: %w", err)
	}
	return schedule.RecoveryBreakWindow(ws), nil
}

func (s *RecoveryServiceImpl) toResponse(r recovery.RecoveryRequest) recovery.RecoveryResponse {
	resp := recovery.RecoveryResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		RecoveryDate:    r.RecoveryDate.Format("2006-01-02"),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		Hours:           r.Hours,
		Reason:          r.Reason,
		Notes:           r.Notes,
		Status:          r.Status,
		DisplayStatus:   string(r.DisplayStatus(s.now(), s.loc)),
		BalanceAdded:    r.BalanceAdded,
		CreatedBy:       r.CreatedBy,
		Context:         r.Context,
		ReviewedBy:      r.ReviewedBy,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:       r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if r.ReviewedAt != nil {
		v := r.ReviewedAt.Format("2006-01-02 15:04:05")
		resp.ReviewedAt = &v
	}
	if r.SettledAt != nil {
		v := r.SettledAt.Format("2006-01-02 15:04:05")
		resp.SettledAt = &v
	}
	return resp
}

func NewRecoveryService(
	txManager database.TxManager,
	recoveryRepo recovery.RecoveryRepository,
	ledgerRepo ledger.LedgerRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	ledgerService ledger.LedgerService,
	cfg Config,
	loc *time.Location,
) recovery.RecoveryService {
	if loc == nil {
		loc = time.UTC
	}
	return &RecoveryServiceImpl{
		txManager:              txManager,
		RecoveryRepository:     recoveryRepo,
		LedgerRepository:       ledgerRepo,
		WorkScheduleRepository: workScheduleRepo,
		ledgerService:          ledgerService,
		cfg:                    cfg,
		loc:                    loc,
		now:                    time.Now,
	}
}
