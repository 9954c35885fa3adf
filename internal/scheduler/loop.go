package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

// loop runs fn on every tick and every manual trigger until stopCh is
// closed or ctx is done. A non-positive interval disables the ticker.
func loop(
	ctx context.Context,
	name string,
	interval time.Duration,
	trigger <-chan struct{},
	stopCh <-chan struct{},
	log logger.Logger,
	fn func(context.Context) error,
) {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-tick:
			if err := fn(ctx); err != nil {
				log.Error(name+" failed", logger.Error(err))
			}
		case <-trigger:
			log.Info("manual " + name + " triggered")
			if err := fn(ctx); err != nil {
				log.Error(name+" failed", logger.Error(err))
			}
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
