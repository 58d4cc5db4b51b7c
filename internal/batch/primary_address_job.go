package batch

import (
	"context"
	"customer-registry/internal/infrastructure/monitoring"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PrimaryFlagRepairer restores the primary-address invariant for every
// customer and reports how many address rows it changed.
type PrimaryFlagRepairer interface {
	RepairPrimaryFlags(ctx context.Context) (int64, error)
}

// PrimaryAddressAuditJob repairs primary-address drift left behind by rows
// written outside the API.
type PrimaryAddressAuditJob struct {
	repo   PrimaryFlagRepairer
	logger *slog.Logger
}

func NewPrimaryAddressAuditJob(repo PrimaryFlagRepairer, logger *slog.Logger) *PrimaryAddressAuditJob {
	if repo == nil || logger == nil {
		panic("PrimaryAddressAuditJob dependencies cannot be nil")
	}
	return &PrimaryAddressAuditJob{
		repo:   repo,
		logger: logger.With("job", "PrimaryAddressAudit"),
	}
}

func (j *PrimaryAddressAuditJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting primary address audit job.")

	changed, err := j.repo.RepairPrimaryFlags(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Primary address audit failed.", slog.Any("error", err), slog.Duration("duration", time.Since(startTime)))
		return fmt.Errorf("primary address audit failed: %w", err)
	}

	monitoring.RecordPrimaryRepairs(changed)
	summaryLog := j.logger.With(
		slog.Duration("duration", time.Since(startTime)),
		slog.Int64("addresses_repaired", changed),
	)
	if changed > 0 {
		summaryLog.WarnContext(ctx, "Primary address audit repaired drifted rows.")
	} else {
		summaryLog.InfoContext(ctx, "Primary address audit found no drift.")
	}
	return nil
}

// Schedule registers job on c. Each run gets its own context bounded by
// timeout.
func Schedule(c *cron.Cron, spec string, timeout time.Duration, job *PrimaryAddressAuditJob, logger *slog.Logger) (cron.EntryID, error) {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	id, err := c.AddJob(spec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "PrimaryAddressAudit")
		jobLogger.Info("Cron triggered: running primary address audit.")

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if runErr := job.Run(ctx); runErr != nil {
			jobLogger.Error("Primary address audit finished with error", slog.Any("error", runErr))
		}
	}))
	if err != nil {
		return 0, fmt.Errorf("failed to schedule primary address audit %q: %w", spec, err)
	}
	logger.Info("Scheduled primary address audit", "schedule", spec, "job_id", id)
	return id, nil
}
