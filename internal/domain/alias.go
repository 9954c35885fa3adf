package domain

import (
	"net/url"
	"strings"
)

// Placeholder is the token replaced by the search terms in an alias URL.
const Placeholder = "%s"

// AliasMatch is the result of a successful alias lookup.
type AliasMatch struct {
	Alias *Alias
	Name  string // the token that matched
	Param string // everything after "<name> "
}

// URL returns the alias target with the parameter substituted.
func (m AliasMatch) URL() string {
	return ExpandAlias(m.Alias.URL, m.Param)
}

// MatchAlias finds the first alias whose name, followed by a space,
// starts the trimmed query. Aliases are tried in slice order, then names
// in declaration order; the first hit wins.
func MatchAlias(query string, aliases []Alias) (AliasMatch, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return AliasMatch{}, false
	}

	for i := range aliases {
		for _, name := range aliases[i].Names {
			if name == "" {
				continue
			}
			prefix := name + " "
			if !strings.HasPrefix(q, prefix) {
				continue
			}
			return AliasMatch{
				Alias: &aliases[i],
				Name:  name,
				Param: q[len(prefix):],
			}, true
		}
	}

	return AliasMatch{}, false
}

// ExpandAlias replaces the first Placeholder in template with the
// percent-encoded param. Spaces are encoded as %20, not '+'.
func ExpandAlias(template, param string) string {
	return strings.Replace(template, Placeholder, encodeComponent(param), 1)
}

// NewAlias builds an alias from a search-engine bookmark title and URL.
func NewAlias(title, target string) Alias {
	display := strings.TrimSpace(title)
	return Alias{
		Names:       []string{strings.ToLower(display)},
		URL:         target,
		DisplayName: display,
	}
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
