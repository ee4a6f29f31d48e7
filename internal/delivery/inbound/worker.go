package inbound

import (
	"context"
	"log/slog"
	"time"

	"github.com/blueseamans/mailanes/internal/pkg/config"
	"github.com/blueseamans/mailanes/internal/pkg/goroutine"
	"github.com/blueseamans/mailanes/internal/pkg/instrument"
	"github.com/blueseamans/mailanes/internal/pkg/uid"
)

const defaultFetchInterval = time.Minute

// Worker runs the pipeline on a fixed interval: a fetch pass, then a retry pass.
type Worker struct {
	uc       ucWorker
	uuid     uid.StringID
	interval time.Duration
}

func NewWorker(cfg config.Config, uuid uid.StringID, uc ucWorker) *Worker {
	interval := cfg.GetSecond("modules.delivery.fetch_interval_seconds")
	if interval <= 0 {
		interval = defaultFetchInterval
	}
	return &Worker{uc: uc, uuid: uuid, interval: interval}
}

// RegisterWorker starts the worker unless modules.delivery.worker_disabled is set.
func RegisterWorker(ctx context.Context, cfg config.Config, routine *goroutine.Manager, uuid uid.StringID, uc ucWorker) {
	if cfg.GetBool("modules.delivery.worker_disabled") {
		slog.InfoContext(ctx, "delivery worker disabled")
		return
	}

	w := NewWorker(cfg, uuid, uc)
	routine.Go(ctx, func(pCtx context.Context) error {
		slog.InfoContext(ctx, "Running delivery worker", "interval", w.interval.String())
		w.Run(pCtx)
		return nil
	})
}

// Run blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Tick(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick runs one fetch pass and one retry pass.
func (w *Worker) Tick(ctx context.Context) {
	ctx = instrument.SetCorrelationID(ctx, w.uuid.Generate())

	fetched, err := w.uc.Fetch(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "delivery fetch pass failed", "error", err)
	} else {
		slog.InfoContext(ctx, "delivery fetch pass done", "campaigns", fetched.Campaigns, "sent", fetched.Sent, "failed", fetched.Failed)
	}

	if ctx.Err() != nil {
		return
	}

	retried, err := w.uc.Retry(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "delivery retry pass failed", "error", err)
		return
	}
	slog.InfoContext(ctx, "delivery retry pass done", "sent", retried.Sent, "failed", retried.Failed)
}
