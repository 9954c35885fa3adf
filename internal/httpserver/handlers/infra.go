package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Backend    string `json:"backend,omitempty"`
	Shortcuts  *int   `json:"shortcuts,omitempty"`
	Engines    *int   `json:"engines,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	File       string `json:"file,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the store, the snapshot index and the seed.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.MemoryIndex.Snapshot()
		shortcuts := len(snap.Shortcuts)
		engines := len(snap.Aliases)

		components := map[string]componentStatus{
			"store": checkStore(r.Context(), d),
			"index": {
				OK:         !snap.LoadedAt.IsZero(),
				Shortcuts:  &shortcuts,
				Engines:    &engines,
				LastReload: formatReload(snap.LoadedAt),
			},
		}
		if d.SeedFile != "" {
			components["seed"] = componentStatus{OK: true, File: d.SeedFile}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

// overallStatus is "critical" without a snapshot, "degraded" when the store
// is down (the last snapshot is still served, writes fail) and "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if !components["index"].OK {
		return "critical"
	}
	if !components["store"].OK {
		return "degraded"
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{Backend: d.StoreKind, Error: "store not initialized"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			Backend: d.StoreKind,
			Impact:  "writes-disabled",
			Error:   err.Error(),
		}
	}
	return componentStatus{OK: true, Backend: d.StoreKind}
}

func formatReload(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.UTC().Format(time.RFC3339)
}
