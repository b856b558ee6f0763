package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"posbridge-server/internal/infra/async"

	"github.com/robfig/cron/v3"
)

type RetentionConfig struct {
	// TTL is how long a command is kept after its deadline.
	TTL time.Duration
	// Schedule is a cron expression or descriptor such as "@every 1h".
	Schedule string
}

func NewRetentionWorker(
	ticker *time.Ticker,
	repository SaleCommandRepository,
	config RetentionConfig,
) (*RetentionWorker, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(config.Schedule)
	if err != nil {
		return nil, fmt.Errorf("parsing retention schedule: %w", err)
	}
	if config.TTL <= 0 {
		return nil, fmt.Errorf("retention ttl must be positive, got %s", config.TTL)
	}

	return &RetentionWorker{
		ticker:     ticker,
		repository: repository,
		ttl:        config.TTL,
		schedule:   schedule,
		now:        func() time.Time { return time.Now().UTC() },
		shutdown:   make(chan struct{}),
	}, nil
}

var _ async.Worker = &RetentionWorker{}

// RetentionWorker hard deletes sale commands long past their deadline. It
// never changes the status of a live command.
type RetentionWorker struct {
	ticker     *time.Ticker
	repository SaleCommandRepository
	ttl        time.Duration
	schedule   cron.Schedule
	now        func() time.Time

	nextRun      time.Time
	shutdown     chan struct{}
	shutdownOnce sync.Once
}

func (w *RetentionWorker) Run(ctx context.Context, done func()) {
	slog.Debug("retention worker started")
	defer done()

	w.nextRun = w.schedule.Next(w.now())
	for {
		select {
		case <-ctx.Done():
			slog.Info("retention worker cancelled")
			return
		case <-w.shutdown:
			slog.Info("retention worker stopped")
			return
		case <-w.ticker.C:
			now := w.now()
			if now.Before(w.nextRun) {
				continue
			}
			w.Purge(ctx, now)
			w.nextRun = w.schedule.Next(now)
		}
	}
}

func (w *RetentionWorker) Shutdown() {
	w.shutdownOnce.Do(func() { close(w.shutdown) })
}

// Purge deletes every command whose deadline is older than now minus the ttl.
func (w *RetentionWorker) Purge(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-w.ttl)
	deleted, err := w.repository.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		slog.Error("purging sale commands",
			slog.Time("cutoff", cutoff),
			slog.String("error", err.Error()))
		return 0
	}

	countPurged(ctx, deleted)
	if deleted > 0 {
		slog.Info("sale commands purged", slog.Int("count", deleted), slog.Time("cutoff", cutoff))
	}
	return deleted
}
