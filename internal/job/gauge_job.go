package job

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/metrics"
)

// GaugeJob refreshes the business gauges from current table counts.
// Scheduled via cron; Run satisfies cron.Job.
type GaugeJob struct {
	db      *gorm.DB
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewGaugeJob creates a new GaugeJob instance
func NewGaugeJob(db *gorm.DB, m *metrics.Metrics, logger *zap.Logger) *GaugeJob {
	return &GaugeJob{
		db:      db,
		metrics: m,
		logger:  logger,
	}
}

// Run counts users, projects and tasks and updates the gauges
func (j *GaugeJob) Run() {
	var users, projects, tasks int64

	if err := j.db.Model(&domain.User{}).Count(&users).Error; err != nil {
		j.logger.Warn("Failed to count users", zap.Error(err))
		return
	}
	if err := j.db.Model(&domain.Project{}).Count(&projects).Error; err != nil {
		j.logger.Warn("Failed to count projects", zap.Error(err))
		return
	}
	if err := j.db.Model(&domain.Task{}).Count(&tasks).Error; err != nil {
		j.logger.Warn("Failed to count tasks", zap.Error(err))
		return
	}

	j.metrics.SetUsersTotal(users)
	j.metrics.SetProjectsTotal(projects)
	j.metrics.SetTasksTotal(tasks)
}
