package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/config"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/index"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/scheduler"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
	"github.com/MrSnakeDoc/myshortcuts/internal/version"
)

type App struct {
	cfg          *config.Config
	logger       logger.Logger
	server       *httpserver.Server
	tree         store.Tree
	catalog      *catalog.Catalog
	memIndex     *index.MemoryIndex
	syncer       *scheduler.Syncer
	seedReloader *scheduler.SeedReloader
}

// New wires the store, catalog, index, schedulers and HTTP server.
func New(ctx context.Context, cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	tree, err := OpenStore(ctx, cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	cat := catalog.New(tree, loggerClient)
	if _, err := cat.EnsureStructure(ctx); err != nil {
		_ = tree.Close()
		return nil, fmt.Errorf("failed to prepare folders: %w", err)
	}

	memIndex := index.NewMemoryIndex()

	// Manual trigger channels are buffered so /reload never blocks
	reloadTrigger := make(chan struct{}, 1)
	syncer := scheduler.NewSyncer(cat, memIndex, loggerClient, cfg.ReloadInterval, reloadTrigger)

	var seedReloader *scheduler.SeedReloader
	var seedReloadTrigger chan struct{}
	if cfg.SeedFile != "" {
		loggerClient.Info("seed file configured", logger.String("file", cfg.SeedFile))
		seedReloadTrigger = make(chan struct{}, 1)
		seedReloader = scheduler.NewSeedReloader(
			cfg.SeedFile,
			cat,
			syncer,
			loggerClient,
			cfg.ReloadInterval,
			seedReloadTrigger,
		)
	} else {
		loggerClient.Info("seed file not configured, seeding disabled")
	}

	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		TrustProxy:        cfg.TrustProxy,
		RateLimitBurst:    cfg.RateLimitBurst,
		RateLimitPerMin:   cfg.RateLimitPerMin,
		Store:             tree,
		StoreKind:         cfg.Store,
		Catalog:           cat,
		MemoryIndex:       memIndex,
		Syncer:            syncer,
		FallbackURL:       cfg.FallbackSearchURL,
		PublicURL:         cfg.PublicURL,
		SeedFile:          cfg.SeedFile,
		ReloadTrigger:     reloadTrigger,
		SeedReloadTrigger: seedReloadTrigger,
	}

	return &App{
		cfg:          cfg,
		logger:       loggerClient,
		server:       httpserver.New(cfg, loggerClient, d),
		tree:         tree,
		catalog:      cat,
		memIndex:     memIndex,
		syncer:       syncer,
		seedReloader: seedReloader,
	}, nil
}

// Run serves until SIGINT/SIGTERM or ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	defer a.closeStore()

	a.logger.Infof("🚀 Starting myshortcuts %s on %s (store=%s)", version.Version, a.cfg.ListenPort, a.cfg.Store)
	a.logger.Infof("myshortcuts %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Seed first so the initial snapshot already contains it
	if a.seedReloader != nil {
		if err := a.seedReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start seed reloader: %w", err)
		}
		a.logger.Info("seed reloader started", logger.Duration("interval", a.cfg.ReloadInterval))
	}

	if err := a.syncer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start snapshot syncer: %w", err)
	}
	a.logger.Info("snapshot syncer started",
		logger.Int("shortcuts", a.memIndex.Count()),
		logger.Int("search_engines", a.memIndex.AliasCount()),
		logger.Duration("interval", a.cfg.ReloadInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		a.stopSchedulers()
		return err
	}

	a.stopSchedulers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ myshortcuts stopped cleanly")
	return nil
}

func (a *App) stopSchedulers() {
	if a.seedReloader != nil {
		a.seedReloader.Stop()
	}
	a.syncer.Stop()
}

func (a *App) closeStore() {
	if err := a.tree.Close(); err != nil {
		a.logger.Warnf("failed to close %s store: %v", a.cfg.Store, err)
		return
	}
	a.logger.Info("✅ store closed cleanly", logger.String("store", a.cfg.Store))
}
