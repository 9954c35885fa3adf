package domain

import (
	"fmt"
	"slices"
	"testing"
)

func TestSuggestionTargetsAlignWithSuggest(t *testing.T) {
	cs := []Candidate{
		{Label: "Gmail", Target: "https://mail.google.com"},
		{Label: "GitHub", Target: "https://github.com"},
		{Label: "Go", Target: "https://go.dev"},
	}
	aliases := []Alias{{Names: []string{"w"}, URL: "https://w/?s=%s", DisplayName: "W"}}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{}},
		{"g", []string{"https://go.dev", "https://mail.google.com", "https://github.com", "https://s/?q=g"}},
		{"w go lang", []string{"https://w/?s=go%20lang"}},
		{"zzz", []string{"https://s/?q=zzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := SuggestionTargets(tt.query, cs, aliases, "https://s/?q=%s")
			if !slices.Equal(got, tt.want) {
				t.Errorf("SuggestionTargets(%q) = %v, want %v", tt.query, got, tt.want)
			}
			if n := len(Suggest(tt.query, cs, aliases)); n != len(got) {
				t.Errorf("len(Suggest) = %d, len(targets) = %d", n, len(got))
			}
		})
	}
}

func TestSuggestionTargetsTruncates(t *testing.T) {
	cs := make([]Candidate, 0, 12)
	for i := range 12 {
		cs = append(cs, Candidate{Label: fmt.Sprintf("x%02d", i), Target: "u"})
	}

	got := SuggestionTargets("x", cs, nil, "")
	if len(got) != MaxSuggestions+1 {
		t.Fatalf("len = %d, want %d", len(got), MaxSuggestions+1)
	}
	if got[MaxSuggestions] != "https://www.google.com/search?q=x" {
		t.Errorf("fallback = %q", got[MaxSuggestions])
	}
}
