package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/trililingo/trililingo-api/internal/domain"
	"github.com/trililingo/trililingo-api/internal/store"
)

// FlusherConfig holds configuration for the sync-event flusher
type FlusherConfig struct {
	// Interval is how often the pending queue is drained
	Interval time.Duration

	// BatchSize is the maximum number of events marked per pass
	BatchSize int
}

// DefaultFlusherConfig returns a FlusherConfig with reasonable defaults
func DefaultFlusherConfig() FlusherConfig {
	return FlusherConfig{
		Interval:  15 * time.Minute,
		BatchSize: 50,
	}
}

// Flusher periodically drains the sync-event queue, transitioning
// pending events to sent in batches. There is no remote endpoint in
// this codebase; "sent" means handed off, and the queue exists so a
// future uploader can take over without a schema change.
type Flusher struct {
	events     store.SyncEventStore
	config     FlusherConfig
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	logger     *slog.Logger
}

// NewFlusher creates a new Flusher.
func NewFlusher(events store.SyncEventStore, config FlusherConfig, logger *slog.Logger) *Flusher {
	if events == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("sync event store cannot be nil")
	}
	if config.Interval <= 0 {
		config.Interval = DefaultFlusherConfig().Interval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultFlusherConfig().BatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Flusher{
		events:     events,
		config:     config,
		ctx:        ctx,
		cancelFunc: cancel,
		logger:     logger.With(slog.String("component", "sync_flusher")),
	}
}

// Start begins the periodic flush loop. One immediate pass runs at
// startup to drain events left over from a previous run.
func (f *Flusher) Start() {
	f.wg.Add(1)
	go f.loop()
}

// Stop gracefully shuts down the flusher, waiting for an in-flight
// pass to finish.
func (f *Flusher) Stop() {
	f.cancelFunc()
	f.wg.Wait()
}

func (f *Flusher) loop() {
	defer f.wg.Done()

	if _, err := f.FlushOnce(f.ctx); err != nil {
		f.logger.Error("startup flush failed", "error", err)
	}

	ticker := time.NewTicker(f.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.ctx.Done():
			return
		case <-ticker.C:
			if _, err := f.FlushOnce(f.ctx); err != nil {
				f.logger.Error("flush pass failed", "error", err)
			}
		}
	}
}

// FlushOnce drains one batch of pending events and returns how many
// were marked sent. Individual marking failures are logged and skipped;
// the event stays pending and is retried on the next pass.
func (f *Flusher) FlushOnce(ctx context.Context) (int, error) {
	pending, err := f.events.GetPending(ctx, f.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to load pending events: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	flushed := 0
	for _, event := range pending {
		if ctx.Err() != nil {
			break
		}
		if err := f.events.SetState(ctx, event.EventID, domain.SyncEventSent); err != nil {
			f.logger.Warn("failed to mark event sent",
				"event_id", event.EventID,
				"event_type", event.Type,
				"error", err)
			continue
		}
		flushed++
	}

	f.logger.Info("flushed sync events",
		"flushed", flushed,
		"batch", len(pending))
	return flushed, nil
}
