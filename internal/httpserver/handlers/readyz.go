package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz is ready once a snapshot was loaded and the store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MemoryIndex.GetLastReload().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: "snapshot not loaded"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		if d.Store == nil || d.Store.Ping(ctx) != nil {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Error: "store unreachable"})
			return
		}

		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
