package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/index"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

// SnapshotLoader is the read side of the catalog
type SnapshotLoader interface {
	Snapshot(ctx context.Context) catalog.Snapshot
}

// Syncer copies the catalog into the memory index on start, on a ticker,
// on manual trigger and after API writes
type Syncer struct {
	source        SnapshotLoader
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewSyncer creates a new syncer. manualTrigger may be nil.
func NewSyncer(
	source SnapshotLoader,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Syncer {
	return &Syncer{
		source:        source,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start syncs once, then keeps the index fresh in the background
func (s *Syncer) Start(ctx context.Context) error {
	if err := s.Sync(ctx); err != nil {
		return err
	}

	go loop(ctx, "snapshot sync", s.interval, s.manualTrigger, s.stopCh, s.logger, s.Sync)
	return nil
}

// Stop stops the background loop; safe to call more than once
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// Sync loads a snapshot and publishes it. Store failures surface as empty
// candidate lists, so only a cancelled context is reported.
func (s *Syncer) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	snap := s.source.Snapshot(ctx)
	s.index.Update(snap)

	s.logger.Debug("snapshot synced",
		logger.Int("shortcuts", len(snap.Shortcuts)),
		logger.Int("search_engines", len(snap.Aliases)))
	return nil
}
