package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/sources/seed"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

// Writer is the write side of the catalog
type Writer interface {
	SaveShortcut(ctx context.Context, name, url string) (store.Node, error)
	SaveSearchEngine(ctx context.Context, name, template string) (store.Node, error)
}

// SeedReloader applies the seed file to the catalog and refreshes the index.
// Entries already present (by name) are left untouched.
type SeedReloader struct {
	loader        *seed.Loader
	writer        Writer
	syncer        *Syncer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewSeedReloader creates a new seed reloader
func NewSeedReloader(
	seedFile string,
	writer Writer,
	syncer *Syncer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *SeedReloader {
	return &SeedReloader{
		loader:        seed.NewLoader(seedFile),
		writer:        writer,
		syncer:        syncer,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start applies the seed once, then periodically
func (sr *SeedReloader) Start(ctx context.Context) error {
	if err := sr.Reload(ctx); err != nil {
		return fmt.Errorf("initial seed reload failed: %w", err)
	}

	go loop(ctx, "seed reload", sr.interval, sr.manualTrigger, sr.stopCh, sr.logger, sr.Reload)
	return nil
}

// Stop stops the reloader; safe to call more than once
func (sr *SeedReloader) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// Reload reads the seed file and saves missing entries
func (sr *SeedReloader) Reload(ctx context.Context) error {
	sr.logger.Info("reloading seed file", logger.String("file", sr.loader.Path()))

	f, err := sr.loader.Load()
	if err != nil {
		return err
	}

	added := 0
	for _, e := range f.Shortcuts {
		ok, err := sr.apply(ctx, e, sr.writer.SaveShortcut)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}
	for _, e := range f.SearchEngines {
		ok, err := sr.apply(ctx, e, sr.writer.SaveSearchEngine)
		if err != nil {
			return err
		}
		if ok {
			added++
		}
	}

	sr.logger.Info("seed applied",
		logger.Int("shortcuts", len(f.Shortcuts)),
		logger.Int("search_engines", len(f.SearchEngines)),
		logger.Int("added", added))

	if sr.syncer != nil && added > 0 {
		return sr.syncer.Sync(ctx)
	}
	return nil
}

func (sr *SeedReloader) apply(
	ctx context.Context,
	e seed.Entry,
	save func(context.Context, string, string) (store.Node, error),
) (bool, error) {
	_, err := save(ctx, e.Name, e.URL)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, catalog.ErrDuplicate):
		return false, nil
	default:
		return false, fmt.Errorf("failed to apply seed entry %q: %w", e.Name, err)
	}
}
