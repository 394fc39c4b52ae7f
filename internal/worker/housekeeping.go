package worker

import (
	"context"
	"time"

	"taskflow/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// PurgeStore is the slice of the store the worker needs: one sweep
// that removes expired completed tasks and reports how many went.
type PurgeStore interface {
	Purge(ctx context.Context) (int, error)
}

type Housekeeper struct {
	store    PurgeStore
	schedule string
	cron     *cron.Cron
}

func NewHousekeeper(store PurgeStore, schedule string) *Housekeeper {
	if schedule == "" {
		schedule = "0 3 * * *"
	}
	return &Housekeeper{
		store:    store,
		schedule: schedule,
	}
}

// Start registers the sweep on the cron schedule. The store already
// purges on load, so the first scheduled run is enough for long-lived
// processes.
func (h *Housekeeper) Start(ctx context.Context) error {
	h.cron = cron.New()

	if _, err := h.cron.AddFunc(h.schedule, func() {
		h.Sweep(ctx)
	}); err != nil {
		return err
	}

	logger.Info("Worker: housekeeping scheduled", zap.String("schedule", h.schedule))
	h.cron.Start()

	go func() {
		<-ctx.Done()
		logger.Info("Worker: housekeeping stopping")
		h.Stop()
	}()

	return nil
}

// Stop waits for a running sweep to finish.
func (h *Housekeeper) Stop() {
	if h.cron == nil {
		return
	}
	<-h.cron.Stop().Done()
}

func (h *Housekeeper) Sweep(ctx context.Context) {
	start := time.Now()
	logger.Info("Worker: purge sweep started", zap.Time("started_at", start))

	purged, err := h.store.Purge(ctx)
	if err != nil {
		logger.Warn("Worker: purge sweep finished with errors",
			zap.Error(err),
			zap.Int("purged", purged),
			zap.Duration("ms", time.Since(start)))
		return
	}

	logger.Info("Worker: purge sweep finished",
		zap.Int("purged", purged),
		zap.Duration("ms", time.Since(start)))
}
