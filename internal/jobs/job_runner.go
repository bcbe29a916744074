package jobs

import (
	"context"
	"time"

	"stokvel-backend/internal/config"
	"stokvel-backend/internal/logger"
	"stokvel-backend/internal/repository"
)

// JobRunner coordinates scheduled maintenance. Cycle advancement is not a
// job: it stays an explicit, on-demand owner operation.
type JobRunner struct {
	repos  repository.Repositories
	config *config.Config
}

func NewJobRunner(repos repository.Repositories, cfg *config.Config) *JobRunner {
	return &JobRunner{repos: repos, config: cfg}
}

// Config exposes the scheduler settings for job registration.
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

// ExpireStaleRequests deletes pending join and leave requests older than the
// configured age. Only pending requests are deletable; decided requests are
// immutable history and stay.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cutoff := time.Now().UTC().AddDate(0, 0, -jr.config.Scheduler.StaleRequestDays)

		joins, err := jr.repos.JoinRequests.DeleteStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale join requests", "error", err)
		}
		leaves, err := jr.repos.LeaveRequests.DeleteStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale leave requests", "error", err)
		}
		logger.Info("Expired stale requests", "join_requests", joins, "leave_requests", leaves, "cutoff", cutoff.Format("2006-01-02"))
	})
}
