package app

import (
	"context"
	"time"

	"github.com/quillmind/core/internal/modules/analysis"
	pkgcron "github.com/quillmind/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	cronLogger := logger.Named("CronService")
	tracker := analysis.NewTracker(db)

	sched.Register(pkgcron.Job{
		Name:        "cleanup_change_records",
		Description: "Remove change records past the retention window",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			removed, err := tracker.Cleanup(ctx)
			if err != nil {
				cronLogger.Warn("change record cleanup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("change record cleanup done", zap.Int64("removed", removed))
			return nil
		},
	})
}
