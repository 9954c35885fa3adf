package domain

import "strings"

// ResolutionKind tells which path produced a Resolution.
type ResolutionKind string

const (
	KindDirect   ResolutionKind = "direct"
	KindAlias    ResolutionKind = "alias"
	KindShortcut ResolutionKind = "shortcut"
	KindFallback ResolutionKind = "fallback"
)

// DefaultFallbackURL is used when the caller does not configure one.
const DefaultFallbackURL = "https://www.google.com/search?q=%s"

// Resolution is the navigation decision for a committed query.
type Resolution struct {
	URL         string         `json:"url"`
	Kind        ResolutionKind `json:"kind"`
	Disposition Disposition    `json:"disposition"`

	// Label is the shortcut title or alias display name, if any.
	Label string `json:"label,omitempty"`
}

// Resolve decides where a committed query navigates.
//
// Precedence: literal http(s) URL, alias, best shortcut, web search.
// The disposition is carried through unchanged.
func Resolve(query string, d Disposition, shortcuts []Candidate, aliases []Alias, fallbackURL string) Resolution {
	if fallbackURL == "" {
		fallbackURL = DefaultFallbackURL
	}

	q := strings.TrimSpace(query)
	if q == "" {
		return Resolution{URL: ExpandAlias(fallbackURL, ""), Kind: KindFallback, Disposition: d}
	}

	if IsDirectURL(q) {
		return Resolution{URL: q, Kind: KindDirect, Disposition: d}
	}

	if m, ok := MatchAlias(q, aliases); ok {
		return Resolution{
			URL:         m.URL(),
			Kind:        KindAlias,
			Disposition: d,
			Label:       m.Alias.DisplayName,
		}
	}

	if best, ok := BestCandidate(q, shortcuts); ok {
		return Resolution{
			URL:         best.Target,
			Kind:        KindShortcut,
			Disposition: d,
			Label:       best.Label,
		}
	}

	return Resolution{URL: ExpandAlias(fallbackURL, q), Kind: KindFallback, Disposition: d}
}

// IsDirectURL reports whether the query is already a navigable http(s) URL.
func IsDirectURL(q string) bool {
	return strings.HasPrefix(q, "http://") || strings.HasPrefix(q, "https://")
}
