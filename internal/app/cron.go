package app

import (
	"context"
	"time"

	"github.com/zeroclick/core/internal/models"
	"github.com/zeroclick/core/internal/modules/ingestion"
	pkgcron "github.com/zeroclick/core/internal/pkg/cron"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const jobRetention = 30 * 24 * time.Hour

func registerCronJobs(sched *pkgcron.Scheduler, db *gorm.DB, logger *zap.Logger) {
	sched.Register(pkgcron.Job{
		Name:        "prune-ingestion-jobs",
		Description: "Delete finished ingestion job rows past the retention window",
		Interval:    24 * time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().UTC().Add(-jobRetention)
			res := db.WithContext(ctx).
				Where("status IN ?", []string{ingestion.StatusInserted, ingestion.StatusFailed}).
				Where("updated_at < ?", cutoff).
				Delete(&models.IngestionJobModel{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				logger.Info("pruned ingestion jobs", zap.Int64("rows", res.RowsAffected))
			}
			return nil
		},
	})
}
