package job

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"soulsync/internal/repository"
	"soulsync/internal/service"
)

// RetentionJob prunes read notifications older than the configured age from
// every owner partition on a cron schedule.
type RetentionJob struct {
	users         *repository.UserRepository
	notifications *service.NotificationService
	maxAge        time.Duration
	schedule      string
	cron          *cron.Cron
	logger        *zap.Logger
}

// NewRetentionJob creates the retention sweep
func NewRetentionJob(
	users *repository.UserRepository,
	notifications *service.NotificationService,
	schedule string,
	maxAge time.Duration,
	logger *zap.Logger,
) *RetentionJob {
	return &RetentionJob{
		users:         users,
		notifications: notifications,
		maxAge:        maxAge,
		schedule:      schedule,
		cron:          cron.New(),
		logger:        logger,
	}
}

// Start registers the schedule and starts the cron runner
func (j *RetentionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("notification retention job started",
		zap.String("schedule", j.schedule),
		zap.Duration("maxAge", j.maxAge))
	return nil
}

// Stop halts the cron runner and waits for a running sweep to finish
func (j *RetentionJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *RetentionJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	users, err := j.users.List(ctx)
	if err != nil {
		j.logger.Error("retention sweep failed to list users", zap.Error(err))
		return
	}

	cutoff := time.Now().Add(-j.maxAge)
	removed := 0
	for i := range users {
		n, err := j.notifications.PruneRead(ctx, users[i].ID, cutoff)
		if err != nil {
			j.logger.Warn("retention sweep failed for owner",
				zap.Error(err),
				zap.String("ownerID", users[i].ID))
			continue
		}
		removed += n
	}

	j.logger.Info("notification retention sweep finished",
		zap.Int("owners", len(users)),
		zap.Int("removed", removed))
}
