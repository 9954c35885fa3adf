package domain

// Candidate is a single matchable entry handed to the engine.
//
// For shortcuts, Label is the bookmark title and Target its URL.
// Candidates come from the bookmark store and are never mutated here.
type Candidate struct {
	// Label is what the query is matched against.
	// Example: "GitHub"
	Label string `json:"label"`

	// Target is the navigation destination.
	// Example: https://github.com
	Target string `json:"target"`
}

// Alias is a search-engine shortcut.
//
// Typing "<name> <terms>" in the address bar expands URL with the terms.
type Alias struct {
	// Names are the tokens that trigger the alias (lower-cased title).
	// Example: ["g"]
	Names []string `json:"names"`

	// URL is the target template; it contains exactly one Placeholder.
	// Example: https://www.google.com/search?q=%s
	URL string `json:"url"`

	// DisplayName is the original, trimmed bookmark title.
	DisplayName string `json:"displayName"`
}

// Disposition tells the caller where a resolved target should open.
// The engine never interprets it.
type Disposition string

const (
	DispositionCurrentTab       Disposition = "currentTab"
	DispositionNewForegroundTab Disposition = "newForegroundTab"
	DispositionNewBackgroundTab Disposition = "newBackgroundTab"
)

// ParseDisposition validates a disposition string.
// An empty string means the current tab, which is the address-bar default.
func ParseDisposition(s string) (Disposition, bool) {
	switch d := Disposition(s); d {
	case "":
		return DispositionCurrentTab, true
	case DispositionCurrentTab, DispositionNewForegroundTab, DispositionNewBackgroundTab:
		return d, true
	default:
		return "", false
	}
}
