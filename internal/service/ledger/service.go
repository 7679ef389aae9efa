package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/google/uuid"
)

type LedgerServiceImpl struct {
	ledger.LedgerRepository
	schedule.WorkScheduleRepository
	attendanceService attendance.AttendanceService
	debtorThreshold   float64
	loc               *time.Location
	now               func() time.Time
}

// CurrentPeriod implements ledger.LedgerService.
func (s *LedgerServiceImpl) CurrentPeriod() ledger.Period {
	return ledger.YearPeriod(s.now().In(s.loc).Year(), s.loc)
}

// GetBalance implements ledger.LedgerService.
func (s *LedgerServiceImpl) GetBalance(ctx context.Context, userID string, period ledger.Period) (ledger.Balance, error) {
	if period.To.Before(period.From) {
		return ledger.Balance{}, ledger.ErrInvalidPeriod
	}
	now := s.now().In(s.loc)
	today := s.localDay(now)

	// future days never carry a balance
	var attendanceHours float64
	to := s.localDay(period.To)
	if to.After(today) {
		to = today
	}
	from := s.localDay(period.From)
	if !from.After(to) {
		days, err := s.attendanceService.ComputeRange(ctx, userID, from, to, now)
		if err != nil {
			return ledger.Balance{}, fmt.Errorf("failed to compute attendance days: %w", err)
		}
		for _, d := range days {
			attendanceHours += d.BalanceHours
		}
	}

	credits, err := s.LedgerRepository.SumCredits(ctx, userID, period.From, period.To)
	if err != nil {
		return ledger.Balance{}, fmt.Errorf("failed to sum ledger credits: %w", err)
	}

	return ledger.NewBalance(userID, period, attendanceHours, credits.Manual, credits.Recovery), nil
}

// GetMyBalance implements ledger.LedgerService.
func (s *LedgerServiceImpl) GetMyBalance(ctx context.Context, query ledger.BalanceQuery) (ledger.BalanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}
	return s.balanceFor(ctx, actor.UserID, query)
}

// GetUserBalance implements ledger.LedgerService.
func (s *LedgerServiceImpl) GetUserBalance(ctx context.Context, userID string, query ledger.BalanceQuery) (ledger.BalanceResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}
	if !actor.CanAccess(userID) {
		return ledger.BalanceResponse{}, ledger.ErrUnauthorized
	}
	return s.balanceFor(ctx, userID, query)
}

func (s *LedgerServiceImpl) balanceFor(ctx context.Context, userID string, query ledger.BalanceQuery) (ledger.BalanceResponse, error) {
	period, err := s.periodFor(query)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}
	b, err := s.GetBalance(ctx, userID, period)
	if err != nil {
		return ledger.BalanceResponse{}, err
	}
	return ledger.NewBalanceResponse(b), nil
}

// AddManualCredit implements ledger.LedgerService.
func (s *LedgerServiceImpl) AddManualCredit(ctx context.Context, req ledger.ManualCreditRequest) (ledger.LedgerEntryResponse, error) {
	if err := req.CheckAdjustment(); err != nil {
		return ledger.LedgerEntryResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return ledger.LedgerEntryResponse{}, err
	}

	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return ledger.LedgerEntryResponse{}, err
	}
	if !actor.IsAdmin() {
		return ledger.LedgerEntryResponse{}, user.ErrAdminPrivilegeRequired
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	adjustmentID, err := uuid.NewV7()
	if err != nil {
		return ledger.LedgerEntryResponse{}, fmt.Errorf("failed to generate adjustment id: %w", err)
	}

	entry, inserted, err := s.LedgerRepository.AppendEntry(ctx, ledger.LedgerEntry{
		UserID:        req.UserID,
		Date:          s.localDay(date),
		Type:          ledger.EntryTypeManualCredit,
		Hours:         timecalc.RoundHours(req.Hours),
		ReferenceType: ledger.ReferenceManualAdjustment,
		ReferenceID:   adjustmentID.String(),
		Description:   req.Reason,
		Notes:         req.Notes,
		CreatedBy:     &actor.UserID,
	})
	if err != nil {
		return ledger.LedgerEntryResponse{}, fmt.Errorf("failed to append manual credit: %w", err)
	}
	if !inserted {
		return ledger.LedgerEntryResponse{}, ledger.ErrDuplicateReference
	}

	slog.Info("Manual credit added", "user_id", req.UserID, "hours", entry.Hours, "created_by", actor.UserID)
	return ledger.NewLedgerEntryResponse(entry), nil
}

// ListTransactions implements ledger.LedgerService.
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context, filter ledger.TransactionFilter) (ledger.ListTransactionsResponse, error) {
	actor, err := user.ActorFromContext(ctx)
	if err != nil {
		return ledger.ListTransactionsResponse{}, err
	}
	userID := actor.UserID
	if filter.UserID != nil && *filter.UserID != "" {
		userID = *filter.UserID
	}
	if !actor.CanAccess(userID) {
		return ledger.ListTransactionsResponse{}, ledger.ErrUnauthorized
	}

	period, err := s.periodFor(filter.BalanceQuery)
	if err != nil {
		return ledger.ListTransactionsResponse{}, err
	}

	entries, err := s.LedgerRepository.ListByUser(ctx, userID, period.From, period.To)
	if err != nil {
		return ledger.ListTransactionsResponse{}, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	resp := ledger.ListTransactionsResponse{
		UserID:    userID,
		StartDate: period.From.Format("2006-01-02"),
		EndDate:   period.To.Format("2006-01-02"),
		Entries:   make([]ledger.LedgerEntryResponse, len(entries)),
	}

	// entries are newest first; the running balance accumulates oldest first
	running := 0.0
	for i := len(entries) - 1; i >= 0; i-- {
		running = timecalc.RoundHours(running + entries[i].Hours)
		item := ledger.NewLedgerEntryResponse(entries[i])
		rb := running
		item.RunningBalance = &rb
		resp.Entries[i] = item
	}
	resp.TotalCredits = running

	return resp, nil
}

// ListDebtors implements ledger.LedgerService.
func (s *LedgerServiceImpl) ListDebtors(ctx context.Context, threshold float64) ([]ledger.Debtor, error) {
	userIDs, err := s.WorkScheduleRepository.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled users: %w", err)
	}

	period := s.CurrentPeriod()
	var debtors []ledger.Debtor
	for _, userID := range userIDs {
		b, err := s.GetBalance(ctx, userID, period)
		if err != nil {
			return nil, fmt.Errorf("failed to compute balance for %s: %w", userID, err)
		}
		if b.Balance < threshold {
			debtors = append(debtors, ledger.Debtor{
				UserID:    userID,
				Balance:   b.Balance,
				DebtHours: b.DebtHours,
			})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Balance < debtors[j].Balance
	})
	return debtors, nil
}

// GetDebtSummary implements ledger.LedgerService.
func (s *LedgerServiceImpl) GetDebtSummary(ctx context.Context, threshold *float64) (ledger.DebtSummaryResponse, error) {
	limit := s.debtorThreshold
	if threshold != nil {
		limit = *threshold
	}

	debtors, err := s.ListDebtors(ctx, limit)
	if err != nil {
		return ledger.DebtSummaryResponse{}, err
	}

	resp := ledger.DebtSummaryResponse{
		Threshold:         limit,
		EmployeesWithDebt: make([]ledger.DebtorResponse, 0, len(debtors)),
	}
	for _, d := range debtors {
		resp.TotalDebtHours += d.DebtHours
		if d.DebtHours > 0 {
			resp.TotalEmployeesWithDebt++
		}
		resp.EmployeesWithDebt = append(resp.EmployeesWithDebt, ledger.DebtorResponse{
			UserID:    d.UserID,
			Balance:   d.Balance,
			DebtHours: d.DebtHours,
		})
	}
	resp.TotalDebtHours = timecalc.RoundHours(resp.TotalDebtHours)

	return resp, nil
}

func (s *LedgerServiceImpl) periodFor(query ledger.BalanceQuery) (ledger.Period, error) {
	if err := query.Validate(); err != nil {
		return ledger.Period{}, err
	}
	switch {
	case query.Year != nil:
		return ledger.YearPeriod(*query.Year, s.loc), nil
	case query.StartDate != nil && query.EndDate != nil:
		from, _ := time.Parse("2006-01-02", *query.StartDate)
		to, _ := time.Parse("2006-01-02", *query.EndDate)
		return ledger.Period{From: s.localDay(from), To: s.localDay(to)}, nil
	}
	return s.CurrentPeriod(), nil
}

func (s *LedgerServiceImpl) localDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func NewLedgerService(
	ledgerRepo ledger.LedgerRepository,
	workScheduleRepo schedule.WorkScheduleRepository,
	attendanceService attendance.AttendanceService,
	debtorThreshold float64,
	loc *time.Location,
) ledger.LedgerService {
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerServiceImpl{
		LedgerRepository:       ledgerRepo,
		WorkScheduleRepository: workScheduleRepo,
		attendanceService:      attendanceService,
		debtorThreshold:        debtorThreshold,
		loc:                    loc,
		now:                    time.Now,
	}
}
