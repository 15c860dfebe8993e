package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"pressroom-backend/internal/config"
	"pressroom-backend/internal/shared"
	"pressroom-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress, redisPassword string, redisDB int, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerRefreshStaleTaxonomyJob(); err != nil {
		return err
	}
	return s.registerCleanupBackoffJob()
}

// Taxonomy refresh runs every 6 hours. Sites that synced within the
// staleness window are skipped inside the job, so frequent runs stay
// cheap.
func (s *Scheduler) registerRefreshStaleTaxonomyJob() error {
	payload, err := json.Marshal(shared.RefreshStaleTaxonomyPayload{MaxSites: 20})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRefreshStaleTaxonomy, payload)

	_, err = s.scheduler.Register(
		"0 */6 * * *",
		task,
		asynq.Queue(shared.QueueSites),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register RefreshStaleTaxonomy job", err)
		return err
	}

	logger.Info("registered RefreshStaleTaxonomy: every 6 hours", nil)
	return nil
}

// Backoff entries expire on their own after the window; the daily prune
// keeps the list from accumulating dead hosts.
func (s *Scheduler) registerCleanupBackoffJob() error {
	payload, err := json.Marshal(shared.CleanupBackoffPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupBackoff, payload)

	_, err = s.scheduler.Register(
		"0 4 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register CleanupBackoff job", err)
		return err
	}

	logger.Info("registered CleanupBackoff: daily at 4 AM", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
