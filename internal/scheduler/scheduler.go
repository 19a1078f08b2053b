package scheduler

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/avolkov/marketsync/internal/config"
	syncsvc "github.com/avolkov/marketsync/internal/service/sync"
)

// Scheduler runs the full sync on the configured cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	syncSvc *syncsvc.Service
	cfg     config.Config
	logger  *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, syncSvc *syncsvc.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:    cron.New(),
		syncSvc: syncSvc,
		cfg:     cfg,
		logger:  logger,
	}
}

// Start registers the sync job and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Sync.CronSchedule))

	if _, err := s.cron.AddFunc(s.cfg.Sync.CronSchedule, s.runSync); err != nil {
		s.logger.Error("failed to schedule sync run", zap.Error(err))
		return
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Sync.RunTimeout)
	defer cancel()

	if _, err := s.syncSvc.Run(ctx, "schedule"); err != nil {
		if errors.Is(err, syncsvc.ErrRunInProgress) {
			s.logger.Warn("scheduled sync skipped, another run is active")
			return
		}
		// Already logged with its failure category by the sync service.
		s.logger.Warn("scheduled sync finished with error")
	}
}
