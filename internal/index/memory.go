package index

import (
	"slices"
	"sync"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
)

// MemoryIndex holds the latest catalog snapshot the HTTP handlers rank
// against. A newer snapshot simply replaces the previous one.
type MemoryIndex struct {
	mu         sync.RWMutex
	shortcuts  []domain.Candidate
	aliases    []domain.Alias
	lastReload time.Time // zero until the first Update
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		shortcuts: []domain.Candidate{},
		aliases:   []domain.Alias{},
	}
}

// Update replaces the shortcuts and aliases
func (idx *MemoryIndex) Update(snap catalog.Snapshot) {
	shortcuts := slices.Clone(snap.Shortcuts)
	if shortcuts == nil {
		shortcuts = []domain.Candidate{}
	}
	aliases := cloneAliases(snap.Aliases)

	loadedAt := snap.LoadedAt
	if loadedAt.IsZero() {
		loadedAt = time.Now()
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.shortcuts = shortcuts
	idx.aliases = aliases
	idx.lastReload = loadedAt
}

// Snapshot returns copies of the current candidate sets
func (idx *MemoryIndex) Snapshot() catalog.Snapshot {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return catalog.Snapshot{
		Shortcuts: slices.Clone(idx.shortcuts),
		Aliases:   cloneAliases(idx.aliases),
		LoadedAt:  idx.lastReload,
	}
}

// Shortcuts returns a copy of the shortcuts in store order
func (idx *MemoryIndex) Shortcuts() []domain.Candidate {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return slices.Clone(idx.shortcuts)
}

// Aliases returns a copy of the search-engine aliases
func (idx *MemoryIndex) Aliases() []domain.Alias {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return cloneAliases(idx.aliases)
}

// Count returns the number of shortcuts
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.shortcuts)
}

// AliasCount returns the number of aliases
func (idx *MemoryIndex) AliasCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.aliases)
}

// GetLastReload returns the timestamp of the last Update
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

func cloneAliases(in []domain.Alias) []domain.Alias {
	out := make([]domain.Alias, len(in))
	for i, a := range in {
		a.Names = slices.Clone(a.Names)
		out[i] = a
	}
	return out
}
