package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const lockKey = "reminders:run-lock"

// Locker serializes reminder runs across instances.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Worker triggers reminder generation on a fixed interval until its context
// is cancelled.
type Worker struct {
	service  *Service
	locker   Locker
	interval time.Duration
	logger   *zap.SugaredLogger
}

func NewWorker(service *Service, locker Locker, interval time.Duration, logger *zap.Logger) *Worker {
	return &Worker{
		service:  service,
		locker:   locker,
		interval: interval,
		logger:   logger.Sugar(),
	}
}

func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("reminder worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.run(ctx)
		}
	}
}

func (w *Worker) run(ctx context.Context) {
	ok, err := w.locker.TryLock(ctx, lockKey, w.interval/2)
	if err != nil {
		w.logger.Errorw("reminder lock unavailable", "err", err)
		return
	}
	if !ok {
		w.logger.Debug("reminder run already in progress elsewhere")
		return
	}

	if err := w.service.GenerateReminders(ctx, time.Now()); err != nil {
		w.logger.Errorw("reminder run failed", "err", err)
	}
}
