package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/daily-verse/backend/internal/core/domain"
)

// DueCollector computes the reminder due-list for an instant.
type DueCollector interface {
	CollectDue(ctx context.Context, now time.Time) ([]domain.DueReminder, error)
}

// BatchDispatcher delivers a collected due-list.
type BatchDispatcher interface {
	Dispatch(ctx context.Context, batch []domain.DueReminder)
}

// Scheduler drives the reminder pipeline: every tick it collects the
// due-list and hands it to the dispatcher. Dispatch runs on its own
// goroutine so a slow Bot API conversation never delays the next tick.
type Scheduler struct {
	collector  DueCollector
	dispatcher BatchDispatcher
	interval   time.Duration
	logger     *slog.Logger
}

func NewScheduler(collector DueCollector, dispatcher BatchDispatcher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		collector:  collector,
		dispatcher: dispatcher,
		interval:   interval,
		logger:     logger,
	}
}

// Run ticks until the context is cancelled. The first tick happens one
// interval after start, which is what a per-minute cadence expects.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("reminder scheduler started",
		slog.Duration("interval", s.interval),
	)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("reminder scheduler stopped")
			return
		case now := <-ticker.C:
			s.tick(ctx, now)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	batch, err := s.collector.CollectDue(ctx, now)
	if err != nil {
		s.logger.Error("failed to collect due reminders",
			slog.String("error", err.Error()),
		)
		return
	}
	if len(batch) == 0 {
		return
	}

	s.logger.Info("dispatching reminder batch",
		slog.Int("count", len(batch)),
	)
	go s.dispatcher.Dispatch(ctx, batch)
}
