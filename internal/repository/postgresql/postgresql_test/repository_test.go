package postgresql_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/ledger"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/bancaore-backend-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newID(t *testing.T) string {
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWorkScheduleRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO work_schedules (id, user_id, day_of_week, is_working_day, start_time, end_time, break_start_time, break_duration_minutes)
		VALUES ($1, $2, 1, TRUE, '09:00', '18:00', '13:00', 60),
		       ($3, $2, 0, FALSE, NULL, NULL, NULL, 0)
	`, newID(t), userID, newID(t))
	require.NoError(t, err)

	repo := postgresql.NewWorkScheduleRepository(setup.DB)

	ws, err := repo.GetByUserAndDay(ctx, userID, time.Monday)
	require.NoError(t, err)
	require.NotNil(t, ws)
	assert.True(t, ws.IsWorkingDay)
	assert.Equal(t, timecalc.MustParseClock("09:00"), ws.StartTime)
	assert.Equal(t, timecalc.MustParseClock("18:00"), ws.EndTime)
	require.NotNil(t, ws.BreakStartTime)
	assert.Equal(t, timecalc.MustParseClock("13:00"), *ws.BreakStartTime)
	assert.Equal(t, 8.0, ws.ContractHours())

	sunday, err := repo.GetByUserAndDay(ctx, userID, time.Sunday)
	require.NoError(t, err)
	require.NotNil(t, sunday)
	assert.False(t, sunday.IsWorkingDay)

	missing, err := repo.GetByUserAndDay(ctx, userID, time.Tuesday)
	require.NoError(t, err)
	assert.Nil(t, missing)

	users, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{userID}, users)
}

func TestLeaveOverrideRepository_OnlyApprovedOverlapping(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO leave_requests (id, user_id, kind, start_date, end_date, permission_time, status)
		VALUES ($1, $4, 'sick_leave', '2025-10-06', '2025-10-08', NULL, 'approved'),
		       ($2, $4, 'early_exit', '2025-10-07', '2025-10-07', '16:00', 'approved'),
		       ($3, $4, 'vacation', '2025-10-07', '2025-10-07', NULL, 'waiting_approval')
	`, newID(t), newID(t), newID(t), userID)
	require.NoError(t, err)

	repo := postgresql.NewLeaveOverrideRepository(setup.DB)

	overrides, err := repo.GetApprovedOverrides(ctx, userID, day(2025, 10, 7))
	require.NoError(t, err)
	require.Len(t, overrides, 2)

	res, err := leave.Resolve(day(2025, 10, 7), overrides)
	require.NoError(t, err)
	assert.Equal(t, leave.OverrideSickLeave, res.FullDay)
	require.NotNil(t, res.EarlyExit)
	assert.Equal(t, timecalc.MustParseClock("16:00"), *res.EarlyExit)

	none, err := repo.GetApprovedOverrides(ctx, userID, day(2025, 10, 9))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceRepository_UpsertKeepsActualHours(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)
	date := day(2025, 10, 6)

	_, err := setup.DB.Exec(ctx, `
		INSERT INTO attendance_records (id, user_id, date, expected_hours, actual_hours, balance_hours, status)
		VALUES ($1, $2, $3, 0, 7.5, 0, 'present')
	`, newID(t), userID, date)
	require.NoError(t, err)

	repo := postgresql.NewAttendanceRepository(setup.DB)

	saved, err := repo.UpsertComputed(ctx, attendance.AttendanceRecord{
		UserID:        userID,
		Date:          date,
		ExpectedHours: 8,
		ActualHours:   0,
		BalanceHours:  -8,
		Status:        attendance.StatusAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, saved.ExpectedHours)
	assert.Equal(t, 7.5, saved.ActualHours)
	assert.Equal(t, -0.5, saved.BalanceHours)
	assert.Equal(t, attendance.StatusAbsent, saved.Status)

	fresh, err := repo.UpsertComputed(ctx, attendance.AttendanceRecord{
		UserID:        userID,
		Date:          day(2025, 10, 7),
		ExpectedHours: 8,
		BalanceHours:  -8,
		Status:        attendance.StatusAbsent,
	})
	require.NoError(t, err)
	assert.Equal(t, -8.0, fresh.BalanceHours)

	records, err := repo.ListByUserAndRange(ctx, userID, day(2025, 10, 1), day(2025, 10, 31))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	missing, err := repo.GetByUserAndDate(ctx, userID, day(2025, 10, 8))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLedgerRepository_AppendEntryIsIdempotentPerReference(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)
	refID := newID(t)

	repo := postgresql.NewLedgerRepository(setup.DB)

	entry := ledger.LedgerEntry{
		UserID:        userID,
		Date:          day(2025, 10, 6),
		Type:          ledger.EntryTypeRecoverySettlement,
		Hours:         4,
		ReferenceType: ledger.ReferenceRecoveryRequest,
		ReferenceID:   refID,
		Description:   "Recovery 2025-10-06 11:00-16:00",
	}

	created, inserted, err := repo.AppendEntry(ctx, entry)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEmpty(t, created.ID)

	_, inserted, err = repo.AppendEntry(ctx, entry)
	require.NoError(t, err)
	assert.False(t, inserted)

	_, _, err = repo.AppendEntry(ctx, ledger.LedgerEntry{
		UserID:        userID,
		Date:          day(2025, 10, 7),
		Type:          ledger.EntryTypeManualCredit,
		Hours:         1.5,
		ReferenceType: ledger.ReferenceManualAdjustment,
		ReferenceID:   newID(t),
		Description:   "Manual adjustment",
	})
	require.NoError(t, err)

	credits, err := repo.SumCredits(ctx, userID, day(2025, 1, 1), day(2025, 12, 31))
	require.NoError(t, err)
	assert.Equal(t, ledger.Credits{Manual: 1.5, Recovery: 4}, credits)

	entries, err := repo.ListByUser(ctx, userID, day(2025, 1, 1), day(2025, 12, 31))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.EntryTypeManualCredit, entries[0].Type)

	got, err := repo.GetByReference(ctx, ledger.ReferenceRecoveryRequest, refID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
}

func newRecovery(userID string) recovery.RecoveryRequest {
	return recovery.RecoveryRequest{
		UserID:       userID,
		RecoveryDate: day(2025, 10, 6),
		StartTime:    timecalc.MustParseClock("11:00"),
		EndTime:      timecalc.MustParseClock("16:00"),
		Hours:        4,
		Reason:       "recover Friday",
		Status:       recovery.StatusPending,
		CreatedBy:    recovery.CreatedByEmployee,
		Context:      recovery.ContextDebt,
	}
}

func TestRecoveryRepository_Workflow(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)
	adminID := newID(t)

	repo := postgresql.NewRecoveryRepository(setup.DB)

	created, err := repo.Create(ctx, newRecovery(userID))
	require.NoError(t, err)
	assert.Equal(t, timecalc.MustParseClock("16:00"), created.EndTime)
	assert.False(t, created.BalanceAdded)

	_, settled, err := repo.MarkSettled(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, settled, "pending requests cannot settle")

	approved, err := repo.UpdateStatus(ctx, created.ID, recovery.StatusPending, recovery.StatusApproved, adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, recovery.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)

	_, err = repo.UpdateStatus(ctx, created.ID, recovery.StatusPending, recovery.StatusRejected, adminID, nil)
	assert.ErrorIs(t, err, recovery.ErrInvalidTransition)

	approved.Reason = "changed"
	_, err = repo.UpdateDetails(ctx, approved)
	assert.ErrorIs(t, err, recovery.ErrInvalidTransition)

	due, err := repo.ListDue(ctx, day(2025, 10, 6))
	require.NoError(t, err)
	require.Len(t, due, 1)

	done, settled, err := repo.MarkSettled(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, settled)
	assert.Equal(t, recovery.StatusCompleted, done.Status)
	assert.True(t, done.BalanceAdded)

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, recovery.ErrImmutableSettlement)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, recovery.ErrRecoveryNotFound)
}

func TestRecoveryRepository_MarkSettledOnce(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	repo := postgresql.NewRecoveryRepository(setup.DB)

	r := newRecovery(newID(t))
	r.Status = recovery.StatusApproved
	created, err := repo.Create(ctx, r)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.MarkSettled(ctx, created.ID, time.Now())
			if err == nil && ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestRecoveryRepository_ListFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	userID := newID(t)

	repo := postgresql.NewRecoveryRepository(setup.DB)

	for i := 0; i < 3; i++ {
		r := newRecovery(userID)
		r.RecoveryDate = day(2025, 10, 6+i)
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, newRecovery(newID(t)))
	require.NoError(t, err)

	start := "2025-10-07"
	rows, total, err := repo.List(ctx, recovery.RecoveryFilter{UserID: &userID, StartDate: &start, Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 1)
	assert.Equal(t, day(2025, 10, 8), rows[0].RecoveryDate)

	require.NoError(t, repo.Delete(ctx, rows[0].ID))
}
