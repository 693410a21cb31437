package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"taskboard-api/internal/service"
)

// cleanupTimeout bounds a single cleanup run
const cleanupTimeout = 5 * time.Minute

// CleanupJob removes expired temporary attachments from storage and the
// database. Scheduled via cron; Run satisfies cron.Job.
type CleanupJob struct {
	attachments service.AttachmentService
	logger      *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(attachments service.AttachmentService, logger *zap.Logger) *CleanupJob {
	return &CleanupJob{
		attachments: attachments,
		logger:      logger,
	}
}

// Run executes one cleanup pass
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	removed, err := j.attachments.CleanupExpired(ctx)
	if err != nil {
		j.logger.Error("Attachment cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("Attachment cleanup completed", zap.Int("removed", removed))
	}
}
