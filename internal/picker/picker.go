// Package picker is an interactive address-bar: suggestions refresh on
// every keystroke and Enter resolves the highlighted entry.
package picker

import (
	"fmt"
	"html"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginTop(1)
)

// Choice is the entry the user committed.
type Choice struct {
	Suggestion domain.Suggestion
	URL        string
}

// Picker is a tea.Model over domain.Suggest.
type Picker struct {
	shortcuts   []domain.Candidate
	aliases     []domain.Alias
	fallbackURL string

	query       []rune
	suggestions []domain.Suggestion
	targets     []string

	cursor    int
	chosen    bool
	cancelled bool
	width     int
}

// New creates a picker pre-filled with query.
func New(query string, shortcuts []domain.Candidate, aliases []domain.Alias, fallbackURL string) Picker {
	p := Picker{
		shortcuts:   shortcuts,
		aliases:     aliases,
		fallbackURL: fallbackURL,
		query:       []rune(query),
		width:       80,
	}
	p.refresh()
	return p
}

func (p *Picker) refresh() {
	q := string(p.query)
	p.suggestions = domain.Suggest(q, p.shortcuts, p.aliases)
	p.targets = domain.SuggestionTargets(q, p.shortcuts, p.aliases, p.fallbackURL)
	p.cursor = 0
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.suggestions) == 0 {
				return p, nil
			}
			p.chosen = true
			return p, tea.Quit

		case tea.KeyDown, tea.KeyTab, tea.KeyCtrlN:
			if p.cursor < len(p.suggestions)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp, tea.KeyShiftTab, tea.KeyCtrlP:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil

		case tea.KeyBackspace:
			if len(p.query) > 0 {
				p.query = p.query[:len(p.query)-1]
				p.refresh()
			}
			return p, nil

		case tea.KeyCtrlU:
			p.query = nil
			p.refresh()
			return p, nil

		case tea.KeySpace:
			p.query = append(p.query, ' ')
			p.refresh()
			return p, nil

		case tea.KeyRunes:
			p.query = append(p.query, msg.Runes...)
			p.refresh()
			return p, nil
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(promptStyle.Render("› "))
	b.WriteString(string(p.query))
	b.WriteString("\n\n")

	for i, s := range p.suggestions {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		// the description is XML-escaped for the browser dropdown
		line := html.UnescapeString(strings.TrimPrefix(s.Description, domain.SelectedMarker))
		b.WriteString(fmt.Sprintf("%s%s\n", cursor, style.Render(truncate(line, p.width-2))))
		if i < len(p.targets) {
			b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(truncate(p.targets[i], p.width-3))))
		}
	}

	b.WriteString(hintStyle.Render("↑/↓: move  Enter: open  Esc: cancel"))
	return b.String()
}

// Choice returns the committed entry; ok is false when cancelled.
func (p Picker) Choice() (Choice, bool) {
	if p.cancelled || !p.chosen || p.cursor >= len(p.suggestions) {
		return Choice{}, false
	}
	c := Choice{Suggestion: p.suggestions[p.cursor]}
	if p.cursor < len(p.targets) {
		c.URL = p.targets[p.cursor]
	}
	return c, true
}

// Query returns what is currently typed.
func (p Picker) Query() string {
	return string(p.query)
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

func truncate(s string, width int) string {
	if width <= 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
