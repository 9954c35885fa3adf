package homepage

import (
	"errors"
	"net/url"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

// ErrEmpty is returned when a file yields no usable link
var ErrEmpty = errors.New("no valid entries found in homepage config")

// MapServices turns every service with an absolute href into a shortcut
// labelled with the service name.
func MapServices(cfg ServicesConfig) ([]domain.Candidate, error) {
	var out []domain.Candidate

	for _, group := range cfg {
		for _, groupName := range sortedKeys(group) {
			for _, serviceMap := range group[groupName] {
				for _, name := range sortedKeys(serviceMap) {
					href := strings.TrimSpace(serviceMap[name].Href)
					if !isAbsoluteURL(href) {
						continue
					}
					out = append(out, domain.Candidate{Label: strings.TrimSpace(name), Target: href})
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// MapBookmarks turns bookmarks into shortcuts. The abbr wins over the
// display name because it is what users type.
func MapBookmarks(cfg BookmarksConfig) ([]domain.Candidate, error) {
	var out []domain.Candidate

	for _, category := range cfg {
		for _, categoryName := range sortedKeys(category) {
			for _, bookmarkMap := range category[categoryName] {
				for _, name := range sortedKeys(bookmarkMap) {
					entries := bookmarkMap[name]
					// Each bookmark has a list with a single entry
					if len(entries) == 0 || entries[0].Href == "" {
						continue
					}
					label := entries[0].Abbr
					if label == "" {
						label = name
					}
					out = append(out, domain.Candidate{Label: strings.TrimSpace(label), Target: entries[0].Href})
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

func isAbsoluteURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// sortedKeys gives map iteration a stable order
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
