package domain

import (
	"fmt"
	"strings"
)

// Suggestion is one entry of the address-bar dropdown.
type Suggestion struct {
	// Content is what the address bar receives when the entry is chosen.
	Content string `json:"content"`

	// Description is the human-readable line (XML-escaped where needed).
	Description string `json:"description"`

	// Rank orders suggestions; 0 is the entry activated on a bare commit.
	Rank int `json:"rank"`
}

// Suggest computes the dropdown for a partially typed query.
//
// An alias match yields a single entry. Otherwise the best MaxSuggestions
// shortcuts are listed, followed by a web-search fallback that is always
// present.
func Suggest(query string, shortcuts []Candidate, aliases []Alias) []Suggestion {
	if strings.TrimSpace(query) == "" {
		return []Suggestion{}
	}

	if m, ok := MatchAlias(query, aliases); ok {
		return []Suggestion{{
			Content:     m.Name,
			Description: fmt.Sprintf(`%sSearch %s for "%s"`, SelectedMarker, m.Alias.DisplayName, m.Param),
			Rank:        0,
		}}
	}

	ranked := RankCandidates(query, shortcuts)
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	out := make([]Suggestion, 0, len(ranked)+1)
	for i, c := range ranked {
		prefix := ""
		if i == 0 {
			prefix = SelectedMarker
		}
		out = append(out, Suggestion{
			Content:     c.Label,
			Description: prefix + c.Label + " - " + escapeAmp(c.Target),
			Rank:        i,
		})
	}

	out = append(out, FallbackSuggestion(query, len(ranked)))
	return out
}

// FallbackSuggestion is the "search the web" entry listed after matches.
func FallbackSuggestion(query string, rank int) Suggestion {
	return Suggestion{
		Content:     query,
		Description: `Search for "` + query + `"`,
		Rank:        rank,
	}
}

// escapeAmp escapes '&' only; the address-bar description is XML and the
// URL is the only part known to carry ampersands.
func escapeAmp(s string) string {
	return strings.ReplaceAll(s, "&", "&amp;")
}
