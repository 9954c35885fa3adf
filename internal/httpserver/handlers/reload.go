package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

type reloadResponse struct {
	Snapshot bool `json:"snapshot"`
	Seed     bool `json:"seed"`
}

// Reload triggers a snapshot sync and, when seeding is enabled, a seed
// reload. Triggers are non-blocking: a pending one answers 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := reloadResponse{
			Snapshot: trigger(d.ReloadTrigger),
			Seed:     trigger(d.SeedReloadTrigger),
		}

		if !res.Snapshot && !res.Seed {
			d.Logger.Warn("reload already pending", logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, errorResponse{
				Error:   "reload_pending",
				Message: "reload already in progress, please wait",
			})
			return
		}

		d.Logger.Info("manual reload triggered via endpoint",
			logger.Bool("snapshot", res.Snapshot),
			logger.Bool("seed", res.Seed),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusAccepted, res)
	}
}

// trigger sends without blocking; a nil channel never fires.
func trigger(ch chan struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}
