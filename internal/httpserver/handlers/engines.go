package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
)

type enginesResponse struct {
	Count   int            `json:"count"`
	Engines []domain.Alias `json:"engines"`
}

// ListEngines returns the search-engine aliases.
func ListEngines(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		aliases := d.MemoryIndex.Aliases()
		writeJSON(w, http.StatusOK, enginesResponse{Count: len(aliases), Engines: aliases})
	}
}
