package jobs

import (
	"time"

	"campus-backend/internal/config"
	"campus-backend/internal/logger"
	"campus-backend/internal/notify"
	"campus-backend/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	accountRepo repository.AccountRepository
	eventRepo   repository.EventRepository
	dispatcher  *notify.Dispatcher
	config      *config.Config

	now func() time.Time // mockable
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	accountRepo repository.AccountRepository,
	eventRepo repository.EventRepository,
	dispatcher *notify.Dispatcher,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		accountRepo: accountRepo,
		eventRepo:   eventRepo,
		dispatcher:  dispatcher,
		config:      cfg,
		now:         time.Now,
	}
}

// Config returns the runner configuration
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
