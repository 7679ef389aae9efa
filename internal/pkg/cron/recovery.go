package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/bancaore-backend-go/internal/domain/recovery"
)

// RecoveryJobs credits elapsed recovery sessions into the ledger.
type RecoveryJobs struct {
	recoveryService recovery.RecoveryService
}

func NewRecoveryJobs(recoveryService recovery.RecoveryService) *RecoveryJobs {
	return &RecoveryJobs{recoveryService: recoveryService}
}

func (j *RecoveryJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	return scheduler.AddJob("settle_due_recoveries", spec, 5*time.Minute, j.SettleDueRecoveries)
}

// SettleDueRecoveries runs the settlement sweep. Settlement is idempotent, so
// overlapping runs and manual settles are safe.
func (j *RecoveryJobs) SettleDueRecoveries(ctx context.Context) error {
	res, err := j.recoveryService.SettleDue(ctx)
	if err != nil {
		return fmt.Errorf("failed to settle due recoveries: %w", err)
	}
	if res.Failed > 0 {
		slog.Warn("Cron: Some recovery settlements failed", "failed", res.Failed, "errors", res.Errors)
	}
	return nil
}
