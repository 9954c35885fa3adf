package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

var (
	shortcuts = []domain.Candidate{
		{Label: "GitHub", Target: "https://github.com"},
		{Label: "GitLab", Target: "https://gitlab.com"},
		{Label: "Docs", Target: "https://docs.example.com/?a=1&b=2"},
	}
	aliases = []domain.Alias{{Names: []string{"g"}, URL: "https://g/?q=%s", DisplayName: "Google"}}
)

func press(p Picker, msgs ...tea.Msg) Picker {
	for _, msg := range msgs {
		m, _ := p.Update(msg)
		p = m.(Picker)
	}
	return p
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialState(t *testing.T) {
	p := New("git", shortcuts, aliases, "https://s/?q=%s")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	// GitHub, GitLab, fallback
	if len(p.suggestions) != 3 {
		t.Errorf("expected 3 suggestions, got %d", len(p.suggestions))
	}
}

func TestPicker_TypingRefreshes(t *testing.T) {
	p := New("", shortcuts, aliases, "https://s/?q=%s")
	if len(p.suggestions) != 0 {
		t.Fatalf("expected no suggestions for empty query, got %d", len(p.suggestions))
	}

	p = press(p, runes("do"))
	if p.Query() != "do" {
		t.Errorf("expected query 'do', got %q", p.Query())
	}
	if len(p.suggestions) != 2 || p.suggestions[0].Content != "Docs" {
		t.Errorf("unexpected suggestions %+v", p.suggestions)
	}

	p = press(p, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace})
	if p.Query() != "" || len(p.suggestions) != 0 {
		t.Errorf("expected empty state, got %q / %d", p.Query(), len(p.suggestions))
	}
}

func TestPicker_Navigate(t *testing.T) {
	p := New("git", shortcuts, aliases, "https://s/?q=%s")

	p = press(p, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}

	p = press(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if p.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", p.cursor)
	}

	p = press(p, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if p.cursor != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", p.cursor)
	}
}

func TestPicker_EnterChoosesTarget(t *testing.T) {
	p := New("git", shortcuts, aliases, "https://s/?q=%s")
	p = press(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	c, ok := p.Choice()
	if !ok {
		t.Fatal("expected a choice")
	}
	if c.Suggestion.Content != "GitLab" || c.URL != "https://gitlab.com" {
		t.Errorf("unexpected choice %+v", c)
	}
}

func TestPicker_FallbackChoice(t *testing.T) {
	p := New("git", shortcuts, aliases, "https://s/?q=%s")
	p = press(p, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	c, ok := p.Choice()
	if !ok || c.URL != "https://s/?q=git" {
		t.Errorf("unexpected choice %+v (ok=%v)", c, ok)
	}
}

func TestPicker_AliasWithSpace(t *testing.T) {
	p := New("g", shortcuts, aliases, "")
	p = press(p, tea.KeyMsg{Type: tea.KeySpace}, runes("go"), tea.KeyMsg{Type: tea.KeyEnter})

	c, ok := p.Choice()
	if !ok || c.URL != "https://g/?q=go" {
		t.Errorf("unexpected choice %+v (ok=%v)", c, ok)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New("git", shortcuts, aliases, "")
	p = press(p, tea.KeyMsg{Type: tea.KeyEsc})

	if !p.Cancelled() {
		t.Error("expected cancelled")
	}
	if _, ok := p.Choice(); ok {
		t.Error("expected no choice after cancel")
	}
}

func TestPicker_EnterWithoutSuggestions(t *testing.T) {
	p := New("", shortcuts, aliases, "")
	m, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = m.(Picker)

	if cmd != nil {
		t.Error("expected no quit on empty list")
	}
	if _, ok := p.Choice(); ok {
		t.Error("expected no choice")
	}
}

func TestPicker_View(t *testing.T) {
	p := New("doc", shortcuts, aliases, "https://s/?q=%s")
	view := p.View()

	if !strings.Contains(view, "Docs - https://docs.example.com/?a=1&b=2") {
		t.Errorf("expected unescaped description in view, got:\n%s", view)
	}
	if strings.Contains(view, domain.SelectedMarker) {
		t.Error("selected marker should be replaced by the cursor")
	}
	if !strings.Contains(view, `Search for "doc"`) {
		t.Error("expected fallback entry in view")
	}
}
