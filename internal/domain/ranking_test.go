package domain

import (
	"testing"
)

func labels(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out
}

func slicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRankCandidates(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []Candidate
		want       []string
	}{
		{
			name:  "exact before prefix before substring",
			query: "git",
			candidates: []Candidate{
				{Label: "my git server", Target: "u1"},
				{Label: "GitHub", Target: "u2"},
				{Label: "Git", Target: "u3"},
			},
			want: []string{"Git", "GitHub", "my git server"},
		},
		{
			name:  "shorter wins among prefixes",
			query: "a",
			candidates: []Candidate{
				{Label: "AB", Target: "u1"},
				{Label: "A", Target: "u2"},
			},
			want: []string{"A", "AB"},
		},
		{
			name:  "ties keep input order",
			query: "doc",
			candidates: []Candidate{
				{Label: "Docs", Target: "first"},
				{Label: "docs", Target: "second"},
				{Label: "DOCS", Target: "third"},
			},
			want: []string{"Docs", "docs", "DOCS"},
		},
		{
			name:  "query is trimmed",
			query: "  mail ",
			candidates: []Candidate{
				{Label: "Gmail", Target: "u1"},
				{Label: "Maps", Target: "u2"},
			},
			want: []string{"Gmail"},
		},
		{
			name:       "blank query",
			query:      "   ",
			candidates: []Candidate{{Label: "anything", Target: "u"}},
			want:       nil,
		},
		{
			name:       "no candidates",
			query:      "x",
			candidates: nil,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := labels(RankCandidates(tt.query, tt.candidates))
			if !slicesEqual(got, tt.want) {
				t.Errorf("RankCandidates(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestRankCandidatesKeepsDuplicates(t *testing.T) {
	cs := []Candidate{
		{Label: "Wiki", Target: "a"},
		{Label: "Wiki", Target: "b"},
	}

	got := RankCandidates("wiki", cs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Target != "a" || got[1].Target != "b" {
		t.Errorf("targets = %s,%s, want a,b", got[0].Target, got[1].Target)
	}
}

func TestRankCandidatesLengthInCharacters(t *testing.T) {
	// "xééé" is 4 runes but 7 bytes; it sorts before the 5-rune label.
	cs := []Candidate{
		{Label: "xabcd", Target: "u1"},
		{Label: "xééé", Target: "u2"},
	}

	got := labels(RankCandidates("x", cs))
	want := []string{"xééé", "xabcd"}
	if !slicesEqual(got, want) {
		t.Errorf("RankCandidates = %v, want %v", got, want)
	}
}

func TestBestCandidate(t *testing.T) {
	cs := []Candidate{
		{Label: "AB", Target: "u1"},
		{Label: "A", Target: "u2"},
	}

	best, ok := BestCandidate("a", cs)
	if !ok {
		t.Fatal("BestCandidate() found nothing")
	}
	if best.Target != "u2" {
		t.Errorf("BestCandidate().Target = %s, want u2", best.Target)
	}

	if _, ok := BestCandidate("zzz", cs); ok {
		t.Error("BestCandidate(zzz) should find nothing")
	}
}
