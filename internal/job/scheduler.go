package job

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the background cron runner
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a stopped scheduler
func NewScheduler(logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Register adds a job under the given cron spec
func (s *Scheduler) Register(spec string, job cron.Job) error {
	_, err := s.cron.AddJob(spec, job)
	if err != nil {
		return err
	}
	s.logger.Info("Scheduled background job", zap.String("spec", spec))
	return nil
}

// Start launches the cron runner in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling; running jobs finish on their own
func (s *Scheduler) Stop() {
	s.cron.Stop()
}
