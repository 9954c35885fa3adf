// Package catalog manages the myshortcuts folder hierarchy inside a
// bookmark tree and turns it into engine candidates.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

// Folder titles of the managed hierarchy.
const (
	RootFolder          = "myshortcuts"
	ShortcutsFolder     = "shortcuts"
	SearchEnginesFolder = "search-engines"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrNoURL         = errors.New("url is required")
	ErrNoPlaceholder = fmt.Errorf("search engine url must contain %s", domain.Placeholder)
	ErrDuplicate     = errors.New("duplicate")
)

// DuplicateError carries the bookmark already using a name.
type DuplicateError struct {
	Existing store.Node
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("Name already used: %q", e.Existing.Title)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Structure holds the ids of the managed folders.
type Structure struct {
	RootID          string
	ShortcutsID     string
	SearchEnginesID string
}

// Catalog reads and writes shortcuts through a store.Tree.
type Catalog struct {
	tree store.Tree
	log  logger.Logger

	// writes are find-then-create sequences; serialize them so two
	// concurrent saves cannot both pass the duplicate check
	mu sync.Mutex
}

func New(tree store.Tree, log logger.Logger) *Catalog {
	return &Catalog{tree: tree, log: log}
}

// EnsureStructure finds or creates myshortcuts/{shortcuts,search-engines}.
// Calling it again is a no-op.
func (c *Catalog) EnsureStructure(ctx context.Context) (Structure, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureLocked(ctx)
}

func (c *Catalog) ensureLocked(ctx context.Context) (Structure, error) {
	root, err := c.findRoot(ctx)
	if err != nil {
		return Structure{}, err
	}
	if root == nil {
		n, err := c.tree.Create(ctx, store.CreateParams{Title: RootFolder})
		if err != nil {
			return Structure{}, fmt.Errorf("failed to create %s folder: %w", RootFolder, err)
		}
		c.log.Info("created folder", logger.String("title", RootFolder))
		root = &n
	}

	s := Structure{RootID: root.ID}
	for _, sub := range []struct {
		title string
		id    *string
	}{
		{ShortcutsFolder, &s.ShortcutsID},
		{SearchEnginesFolder, &s.SearchEnginesID},
	} {
		n, err := c.findOrCreateFolder(ctx, root.ID, sub.title)
		if err != nil {
			return Structure{}, err
		}
		*sub.id = n.ID
	}

	return s, nil
}

func (c *Catalog) findRoot(ctx context.Context) (*store.Node, error) {
	nodes, err := c.tree.Search(ctx, RootFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s folder: %w", RootFolder, err)
	}
	for i := range nodes {
		if nodes[i].IsFolder() {
			return &nodes[i], nil
		}
	}
	return nil, nil
}

func (c *Catalog) findFolder(ctx context.Context, parentID, title string) (*store.Node, error) {
	children, err := c.tree.Children(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", parentID, err)
	}
	for i := range children {
		if children[i].IsFolder() && children[i].Title == title {
			return &children[i], nil
		}
	}
	return nil, nil
}

func (c *Catalog) findOrCreateFolder(ctx context.Context, parentID, title string) (store.Node, error) {
	existing, err := c.findFolder(ctx, parentID, title)
	if err != nil {
		return store.Node{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	n, err := c.tree.Create(ctx, store.CreateParams{ParentID: parentID, Title: title})
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to create %s folder: %w", title, err)
	}
	c.log.Info("created folder", logger.String("title", title))
	return n, nil
}

// children lists the bookmarks of a managed subfolder. A missing folder
// yields no entries and no error.
func (c *Catalog) children(ctx context.Context, sub string) ([]store.Node, error) {
	root, err := c.findRoot(ctx)
	if err != nil || root == nil {
		return nil, err
	}
	folder, err := c.findFolder(ctx, root.ID, sub)
	if err != nil || folder == nil {
		return nil, err
	}
	nodes, err := c.tree.Children(ctx, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", sub, err)
	}
	return nodes, nil
}

// Shortcuts returns the saved shortcuts in store order.
func (c *Catalog) Shortcuts(ctx context.Context) ([]domain.Candidate, error) {
	nodes, err := c.children(ctx, ShortcutsFolder)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Candidate, 0, len(nodes))
	for _, n := range nodes {
		if n.IsFolder() {
			continue
		}
		out = append(out, domain.Candidate{Label: n.Title, Target: n.URL})
	}
	return out, nil
}

// SearchEngines returns the aliases; bookmarks without the placeholder are ignored.
func (c *Catalog) SearchEngines(ctx context.Context) ([]domain.Alias, error) {
	nodes, err := c.children(ctx, SearchEnginesFolder)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Alias, 0, len(nodes))
	for _, n := range nodes {
		if n.IsFolder() || !strings.Contains(n.URL, domain.Placeholder) {
			continue
		}
		out = append(out, domain.NewAlias(n.Title, n.URL))
	}
	return out, nil
}

// Snapshot is a consistent view of both candidate sets.
type Snapshot struct {
	Shortcuts []domain.Candidate
	Aliases   []domain.Alias
	LoadedAt  time.Time
}

// Snapshot loads shortcuts and search engines concurrently. A failing half
// is logged and comes back empty; the engine treats it as "no matches".
func (c *Catalog) Snapshot(ctx context.Context) Snapshot {
	var (
		wg        sync.WaitGroup
		shortcuts []domain.Candidate
		aliases   []domain.Alias
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if shortcuts, err = c.Shortcuts(ctx); err != nil {
			c.log.Warn("failed to load shortcuts", logger.Error(err))
			shortcuts = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if aliases, err = c.SearchEngines(ctx); err != nil {
			c.log.Warn("failed to load search engines", logger.Error(err))
			aliases = nil
		}
	}()
	wg.Wait()

	if shortcuts == nil {
		shortcuts = []domain.Candidate{}
	}
	if aliases == nil {
		aliases = []domain.Alias{}
	}

	return Snapshot{Shortcuts: shortcuts, Aliases: aliases, LoadedAt: time.Now()}
}

// CheckDuplicate returns the shortcut titled exactly name, or nil.
func (c *Catalog) CheckDuplicate(ctx context.Context, name string) (*store.Node, error) {
	nodes, err := c.children(ctx, ShortcutsFolder)
	if err != nil {
		return nil, err
	}
	return findTitle(nodes, strings.TrimSpace(name)), nil
}

// SaveShortcut stores a new shortcut, creating the folders on demand.
func (c *Catalog) SaveShortcut(ctx context.Context, name, url string) (store.Node, error) {
	return c.save(ctx, ShortcutsFolder, name, url)
}

// SaveSearchEngine stores a search engine whose URL contains the placeholder.
func (c *Catalog) SaveSearchEngine(ctx context.Context, name, template string) (store.Node, error) {
	if strings.TrimSpace(template) != "" && !strings.Contains(template, domain.Placeholder) {
		return store.Node{}, ErrNoPlaceholder
	}
	return c.save(ctx, SearchEnginesFolder, name, template)
}

func (c *Catalog) save(ctx context.Context, sub, name, url string) (store.Node, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" {
		return store.Node{}, ErrEmptyName
	}
	if url == "" {
		return store.Node{}, ErrNoURL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.ensureLocked(ctx)
	if err != nil {
		return store.Node{}, err
	}
	parentID := s.ShortcutsID
	if sub == SearchEnginesFolder {
		parentID = s.SearchEnginesID
	}

	return c.createUnique(ctx, parentID, name, url)
}

func (c *Catalog) createUnique(ctx context.Context, parentID, name, url string) (store.Node, error) {
	siblings, err := c.tree.Children(ctx, parentID)
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to list siblings: %w", err)
	}
	if existing := findTitle(siblings, name); existing != nil {
		return store.Node{}, &DuplicateError{Existing: *existing}
	}

	n, err := c.tree.Create(ctx, store.CreateParams{ParentID: parentID, Title: name, URL: url})
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to save %q: %w", name, err)
	}

	c.log.Info("bookmark saved", logger.String("title", name), logger.String("url", url))
	return n, nil
}

func findTitle(nodes []store.Node, title string) *store.Node {
	for i := range nodes {
		if !nodes[i].IsFolder() && nodes[i].Title == title {
			return &nodes[i]
		}
	}
	return nil
}
