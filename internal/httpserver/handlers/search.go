package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
)

// DispositionHeader echoes where the client asked the result to open.
// Opening a tab is the caller's job; the server only redirects.
const DispositionHeader = "X-Disposition"

// Search resolves a committed query and redirects to it. format=json
// returns the resolution instead of redirecting.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		query := params.Get("q")

		disposition, ok := domain.ParseDisposition(params.Get("disposition"))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_disposition",
				"disposition must be currentTab, newForegroundTab or newBackgroundTab")
			return
		}

		// Internal endpoints: "/inf" jumps to /infra when the prefix is unique
		if trimmed := strings.TrimSpace(query); strings.HasPrefix(trimmed, "/") {
			if endpoint := matchInternalEndpoint(trimmed); endpoint != "" {
				d.Logger.Debug("internal endpoint redirect", logger.String("endpoint", endpoint))
				http.Redirect(w, r, endpoint, http.StatusFound)
				return
			}
		}

		snap := d.MemoryIndex.Snapshot()
		res := domain.Resolve(query, disposition, snap.Shortcuts, snap.Aliases, d.FallbackURL)

		d.Logger.Debug("query resolved",
			logger.String("kind", string(res.Kind)),
			logger.String("label", res.Label),
			logger.String("disposition", string(res.Disposition)))

		if params.Get("format") == "json" {
			writeJSON(w, http.StatusOK, res)
			return
		}

		w.Header().Set(DispositionHeader, string(res.Disposition))
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, res.URL, http.StatusFound)
	}
}

// matchInternalEndpoint returns the endpoint the query is a unique prefix
// of, or "" when none or several match.
func matchInternalEndpoint(query string) string {
	endpoints := []string{
		"/infra",
		"/healthz",
		"/readyz",
		"/shortcuts",
		"/engines",
	}

	query = strings.ToLower(query)
	match := ""
	for _, endpoint := range endpoints {
		if !strings.HasPrefix(endpoint, query) {
			continue
		}
		if match != "" {
			return ""
		}
		match = endpoint
	}
	return match
}
