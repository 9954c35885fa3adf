// Package sqlite implements store.Tree on a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

const currentSchemaVersion = 1

// Store implements store.Tree using a SQLite database.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var _ store.Tree = (*Store)(nil)

// Open opens (and migrates) the database at path, creating its directory.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: path, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		// missing table: fresh database
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the node tree.
func (s *Store) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY NOT NULL,
			parent_id TEXT,
			title TEXT NOT NULL,
			url TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			FOREIGN KEY (parent_id) REFERENCES nodes(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, position);
		CREATE INDEX IF NOT EXISTS idx_nodes_title ON nodes(title);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	_, err := s.db.Exec("INSERT OR REPLACE INTO schema_version (version) VALUES (?)", currentSchemaVersion)
	return err
}

const nodeColumns = "id, parent_id, title, url, created_at"

// Search returns nodes titled exactly title, oldest first.
func (s *Store) Search(ctx context.Context, title string) ([]store.Node, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+nodeColumns+" FROM nodes WHERE title = ? ORDER BY created_at, position", title)
	if err != nil {
		return nil, fmt.Errorf("failed to search nodes: %w", err)
	}
	return scanNodes(rows)
}

// Children returns the direct children of parentID in insertion order.
// An empty parentID lists root-level nodes.
func (s *Store) Children(ctx context.Context, parentID string) ([]store.Node, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID == "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+nodeColumns+" FROM nodes WHERE parent_id IS NULL ORDER BY position")
	} else {
		if _, err := s.Get(ctx, parentID); err != nil {
			return nil, err
		}
		rows, err = s.db.QueryContext(ctx,
			"SELECT "+nodeColumns+" FROM nodes WHERE parent_id = ? ORDER BY position", parentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return scanNodes(rows)
}

// Get returns a single node.
func (s *Store) Get(ctx context.Context, id string) (store.Node, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+nodeColumns+" FROM nodes WHERE id = ?", id)
	n, err := scanNode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Node{}, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to get node: %w", err)
	}
	return n, nil
}

// Create appends a node at the end of its parent's children.
func (s *Store) Create(ctx context.Context, p store.CreateParams) (store.Node, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var parent sql.NullString
	if p.ParentID != "" {
		var url string
		err := tx.QueryRowContext(ctx, "SELECT url FROM nodes WHERE id = ?", p.ParentID).Scan(&url)
		if errors.Is(err, sql.ErrNoRows) {
			return store.Node{}, fmt.Errorf("%w: parent %s", store.ErrNotFound, p.ParentID)
		}
		if err != nil {
			return store.Node{}, fmt.Errorf("failed to load parent: %w", err)
		}
		if url != "" {
			return store.Node{}, fmt.Errorf("parent %s is not a folder", p.ParentID)
		}
		parent = sql.NullString{String: p.ParentID, Valid: true}
	}

	var position int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position), -1) + 1 FROM nodes WHERE parent_id IS ?", parent).Scan(&position)
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to compute position: %w", err)
	}

	n := store.Node{
		ID:        uuid.NewString(),
		ParentID:  p.ParentID,
		Title:     p.Title,
		URL:       p.URL,
		CreatedAt: s.now().UTC().Truncate(time.Second),
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO nodes (id, parent_id, title, url, position, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		n.ID, parent, n.Title, n.URL, position, n.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return store.Node{}, fmt.Errorf("failed to insert node: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return store.Node{}, fmt.Errorf("failed to commit: %w", err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNode(r rowScanner) (store.Node, error) {
	var (
		n         store.Node
		parentID  sql.NullString
		createdAt string
	)
	if err := r.Scan(&n.ID, &parentID, &n.Title, &n.URL, &createdAt); err != nil {
		return store.Node{}, err
	}
	n.ParentID = parentID.String

	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return store.Node{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	n.CreatedAt = t

	return n, nil
}

func scanNodes(rows *sql.Rows) ([]store.Node, error) {
	defer rows.Close()

	nodes := []store.Node{}
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return nodes, nil
}
