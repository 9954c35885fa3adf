// Package homepage reads gethomepage.dev dashboard files so their links
// can be imported as shortcuts.
package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// templateVar matches Homepage {{HOMEPAGE_VAR_...}} placeholders
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// LoadServices reads and parses a services.yaml file
func LoadServices(path string) (ServicesConfig, error) {
	var cfg ServicesConfig
	if err := load(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load services: %w", err)
	}
	return cfg, nil
}

// LoadBookmarks reads and parses a bookmarks.yaml file
func LoadBookmarks(path string) (BookmarksConfig, error) {
	var cfg BookmarksConfig
	if err := load(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	return cfg, nil
}

func load(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	data = stripTemplateVariables(data)

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// stripTemplateVariables blanks Homepage template variables
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
