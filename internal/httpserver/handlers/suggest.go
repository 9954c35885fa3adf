package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
)

type suggestResponse struct {
	Query       string              `json:"query"`
	Suggestions []domain.Suggestion `json:"suggestions"`
}

// Suggest answers as-you-type requests. The default body is
// {"query":..., "suggestions":[...]}; format=opensearch returns the
// OpenSearch suggestions array [query, [contents], [descriptions], [urls]].
func Suggest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		snap := d.MemoryIndex.Snapshot()
		suggestions := domain.Suggest(query, snap.Shortcuts, snap.Aliases)

		if r.URL.Query().Get("format") != "opensearch" {
			writeJSON(w, http.StatusOK, suggestResponse{Query: query, Suggestions: suggestions})
			return
		}

		contents := make([]string, 0, len(suggestions))
		descriptions := make([]string, 0, len(suggestions))
		for _, s := range suggestions {
			contents = append(contents, s.Content)
			descriptions = append(descriptions, s.Description)
		}
		urls := domain.SuggestionTargets(query, snap.Shortcuts, snap.Aliases, d.FallbackURL)

		writeJSONAs(w, http.StatusOK, "application/x-suggestions+json",
			[]any{query, contents, descriptions, urls})
	}
}
