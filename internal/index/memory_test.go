package index

import (
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if got := index.Shortcuts(); got == nil || len(got) != 0 {
		t.Errorf("NewMemoryIndex() should start with empty shortcuts, got %v", got)
	}
	if !index.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be zero before any update")
	}
}

func TestUpdateOverwrites(t *testing.T) {
	index := NewMemoryIndex()

	index.Update(catalog.Snapshot{
		Shortcuts: []domain.Candidate{{Label: "one", Target: "u1"}},
	})
	index.Update(catalog.Snapshot{
		Shortcuts: []domain.Candidate{{Label: "two", Target: "u2"}, {Label: "three", Target: "u3"}},
		Aliases:   []domain.Alias{{Names: []string{"g"}, URL: "https://g/?q=%s"}},
		LoadedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})

	if index.Count() != 2 {
		t.Errorf("Count() = %v, want 2", index.Count())
	}
	if index.AliasCount() != 1 {
		t.Errorf("AliasCount() = %v, want 1", index.AliasCount())
	}
	if got := index.Shortcuts()[0].Label; got != "two" {
		t.Errorf("Shortcuts()[0] = %v, want two", got)
	}
	if got := index.GetLastReload(); !got.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("GetLastReload() = %v", got)
	}
}

func TestReadersGetCopies(t *testing.T) {
	index := NewMemoryIndex()
	index.Update(catalog.Snapshot{
		Shortcuts: []domain.Candidate{{Label: "a", Target: "u"}},
		Aliases:   []domain.Alias{{Names: []string{"g"}, URL: "https://g/?q=%s"}},
	})

	s := index.Shortcuts()
	s[0].Label = "mutated"
	a := index.Aliases()
	a[0].Names[0] = "mutated"

	snap := index.Snapshot()
	if snap.Shortcuts[0].Label != "a" {
		t.Errorf("shortcut mutated through copy: %v", snap.Shortcuts[0].Label)
	}
	if snap.Aliases[0].Names[0] != "g" {
		t.Errorf("alias mutated through copy: %v", snap.Aliases[0].Names[0])
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			index.Update(catalog.Snapshot{
				Shortcuts: []domain.Candidate{{Label: "s", Target: "u"}},
				LoadedAt:  time.Now().Add(time.Duration(i) * time.Second),
			})
		}()
		go func() {
			defer wg.Done()
			_ = index.Snapshot()
			_ = index.Count()
		}()
	}
	wg.Wait()

	if index.Count() != 1 {
		t.Errorf("Count() = %v, want 1", index.Count())
	}
}
