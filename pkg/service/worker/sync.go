package worker

import (
	"context"
	"time"

	"github.com/orgwatch/dirsync/pkg/usecase"
	"github.com/orgwatch/dirsync/pkg/utils/errutil"
	"github.com/orgwatch/dirsync/pkg/utils/logging"
)

// SyncRunner performs one full reconciliation cycle
type SyncRunner interface {
	SyncAll(ctx context.Context) (*usecase.SyncReport, error)
}

// SyncWorker runs full directory reconciliation on a fixed interval.
//
// Architecture assumptions:
// - Single process instance (no distributed locking)
// - For horizontal scaling, add distributed locking or leader election
type SyncWorker struct {
	runner   SyncRunner
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSyncWorker creates a worker that reconciles the directory every interval
func NewSyncWorker(runner SyncRunner, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		runner:   runner,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sync loop
// - Initial sync and periodic runs both happen in a background goroutine
// - Does not block the caller
func (w *SyncWorker) Start(ctx context.Context) error {
	logging.Default().Info("directory sync worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *SyncWorker) Stop() {
	logging.Default().Info("directory sync worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("directory sync worker stopped")
}

// run is the main worker loop (runs in goroutine)
func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	// Initial sync runs immediately rather than waiting a full interval
	w.syncOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.syncOnce(ctx)

		case <-w.stopCh:
			logging.Default().Info("directory sync worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("directory sync worker context cancelled")
			return
		}
	}
}

// syncOnce performs a single cycle; a failed run is logged and retried on
// the next tick, existing local data stays untouched
func (w *SyncWorker) syncOnce(ctx context.Context) {
	report, err := w.runner.SyncAll(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "directory sync failed (will retry next interval)")
		return
	}

	logging.Default().Info("directory sync cycle completed",
		"duration", report.FinishedAt.Sub(report.StartedAt).String(),
		"teams", report.Teams.Synced(),
		"channels", report.Channels.Synced(),
		"users", report.Users.Synced())
}
