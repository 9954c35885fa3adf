// Package seed reads the declarative shortcut file applied at startup.
package seed

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

// Entry is a named URL.
type Entry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// File is the root of the seed YAML.
type File struct {
	Shortcuts     []Entry `yaml:"shortcuts"`
	SearchEngines []Entry `yaml:"search_engines"`
}

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path returns the seed file path.
func (l *Loader) Path() string {
	return l.filePath
}

// Load reads the file, expands ${VAR} references and drops invalid entries.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes seed YAML.
func Parse(data []byte) (File, error) {
	expanded := os.ExpandEnv(string(data))

	var f File
	if err := yaml.Unmarshal([]byte(expanded), &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	f.Shortcuts = keepValid(f.Shortcuts, false)
	f.SearchEngines = keepValid(f.SearchEngines, true)
	return f, nil
}

// Candidates returns the shortcuts as engine candidates.
func (f File) Candidates() []domain.Candidate {
	out := make([]domain.Candidate, 0, len(f.Shortcuts))
	for _, e := range f.Shortcuts {
		out = append(out, domain.Candidate{Label: e.Name, Target: e.URL})
	}
	return out
}

func keepValid(entries []Entry, needPlaceholder bool) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		e.Name = strings.TrimSpace(e.Name)
		e.URL = strings.TrimSpace(e.URL)
		if e.Name == "" || e.URL == "" {
			continue
		}
		if needPlaceholder && !strings.Contains(e.URL, domain.Placeholder) {
			continue
		}
		out = append(out, e)
	}
	return out
}
