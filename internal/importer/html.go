// Package importer reads browser bookmark exports.
package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

// Entry is one bookmark found in an export.
type Entry struct {
	Title   string
	URL     string
	Folder  string // "/"-joined folder path, empty at the top level
	AddedAt time.Time
}

// ParseHTML parses a Netscape bookmark file (the format every browser
// exports). Anchors without HREF are skipped; an empty title falls back to
// the URL.
func ParseHTML(r io.Reader) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var (
		entries []Entry
		path    []string
		pending string // folder named by an H3, entered at the next DL
		walk    func(*html.Node)
	)

	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				pending = textContent(n)
				return

			case "a":
				href := strings.TrimSpace(attr(n, "href"))
				if href == "" {
					return
				}
				title := textContent(n)
				if title == "" {
					title = href
				}
				e := Entry{Title: title, URL: href, Folder: strings.Join(path, "/")}
				if ts, err := strconv.ParseInt(attr(n, "add_date"), 10, 64); err == nil {
					e.AddedAt = time.Unix(ts, 0)
				}
				entries = append(entries, e)
				return

			case "dl":
				pushed := false
				if pending != "" {
					path = append(path, pending)
					pending = ""
					pushed = true
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c)
				}
				if pushed {
					path = path[:len(path)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return entries, nil
}

// InFolder keeps the entries whose folder path ends with suffix, e.g.
// "myshortcuts/shortcuts" matches "Bookmarks bar/myshortcuts/shortcuts".
// An empty suffix keeps everything.
func InFolder(entries []Entry, suffix string) []Entry {
	suffix = strings.Trim(suffix, "/")
	if suffix == "" {
		return entries
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Folder == suffix || strings.HasSuffix(e.Folder, "/"+suffix) {
			out = append(out, e)
		}
	}
	return out
}

// Candidates converts entries to shortcut candidates.
func Candidates(entries []Entry) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(entries))
	for _, e := range entries {
		out = append(out, domain.Candidate{Label: e.Title, Target: e.URL})
	}
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(b.String())
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
