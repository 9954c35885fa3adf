// Package store defines the hierarchical bookmark tree the catalog is built on.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned for an unknown node or parent id.
var ErrNotFound = errors.New("store: node not found")

// Node is a folder (empty URL) or a bookmark in the tree.
type Node struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parentId,omitempty"` // empty at root level
	Title     string    `json:"title"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsFolder reports whether the node is a folder.
func (n Node) IsFolder() bool {
	return n.URL == ""
}

// CreateParams describes a node to create.
type CreateParams struct {
	ParentID string
	Title    string
	URL      string
}

// Tree is the bookmark store. Implementations must return children in
// insertion order and must be safe for concurrent use.
type Tree interface {
	// Search returns every node whose title equals title exactly.
	Search(ctx context.Context, title string) ([]Node, error)
	Children(ctx context.Context, parentID string) ([]Node, error)
	Get(ctx context.Context, id string) (Node, error)
	Create(ctx context.Context, p CreateParams) (Node, error)
	Ping(ctx context.Context) error
	Close() error
}
