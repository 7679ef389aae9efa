package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/attendance"
)

// AttendanceJobs persists computed attendance days once they are over.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	loc               *time.Location
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, loc *time.Location) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		loc:               loc,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("finalize_attendance_day", spec, 30*time.Minute, j.FinalizeYesterday)
}

// FinalizeYesterday stores the computed record of the previous local day for
// every scheduled user. Stored actual hours are kept.
func (j *AttendanceJobs) FinalizeYesterday(ctx context.Context) error {
	yesterday := j.now().In(j.loc).AddDate(0, 0, -1)

	slog.Info("Cron: Starting attendance finalizer", "date", yesterday.Format("2006-01-02"))

	res, err := j.attendanceService.FinalizeDay(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to finalize attendance day: %w", err)
	}
	if res.Failed > 0 {
		slog.Warn("Cron: Attendance finalizer had failures", "date", res.Date, "failed", res.Failed)
	}
	return nil
}
