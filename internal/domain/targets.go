package domain

import "strings"

// SuggestionTargets returns where each entry of Suggest(query, ...) leads,
// index for index: the alias expansion, the shortcut targets, then the
// web-search fallback.
func SuggestionTargets(query string, shortcuts []Candidate, aliases []Alias, fallbackURL string) []string {
	if strings.TrimSpace(query) == "" {
		return []string{}
	}

	if m, ok := MatchAlias(query, aliases); ok {
		return []string{m.URL()}
	}

	ranked := RankCandidates(query, shortcuts)
	if len(ranked) > MaxSuggestions {
		ranked = ranked[:MaxSuggestions]
	}

	if fallbackURL == "" {
		fallbackURL = DefaultFallbackURL
	}

	out := make([]string, 0, len(ranked)+1)
	for _, c := range ranked {
		out = append(out, c.Target)
	}
	return append(out, ExpandAlias(fallbackURL, strings.TrimSpace(query)))
}
