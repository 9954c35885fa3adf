package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/MrSnakeDoc/myshortcuts/internal/store"
	"github.com/MrSnakeDoc/myshortcuts/internal/store/sqlite"
)

func openTemp(t *testing.T) *sqlite.Store {
	t.Helper()

	s, err := sqlite.Open(filepath.Join(t.TempDir(), "nested", "bookmarks.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_CreateAndChildrenOrder(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	root, err := s.Create(ctx, store.CreateParams{Title: "myshortcuts"})
	assert.NilError(t, err)
	assert.Assert(t, root.IsFolder())
	assert.Equal(t, root.ParentID, "")

	titles := []string{"zeta", "alpha", "mid"}
	for _, title := range titles {
		_, err := s.Create(ctx, store.CreateParams{ParentID: root.ID, Title: title, URL: "https://" + title})
		assert.NilError(t, err)
	}

	children, err := s.Children(ctx, root.ID)
	assert.NilError(t, err)
	assert.Equal(t, len(children), 3)
	for i, title := range titles {
		assert.Equal(t, children[i].Title, title)
		assert.Equal(t, children[i].ParentID, root.ID)
	}

	top, err := s.Children(ctx, "")
	assert.NilError(t, err)
	assert.Equal(t, len(top), 1)
	assert.Equal(t, top[0].ID, root.ID)
}

func TestStore_SearchExactTitle(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Create(ctx, store.CreateParams{Title: "myshortcuts"})
	assert.NilError(t, err)
	_, err = s.Create(ctx, store.CreateParams{Title: "myshortcuts-old"})
	assert.NilError(t, err)

	found, err := s.Search(ctx, "myshortcuts")
	assert.NilError(t, err)
	assert.Equal(t, len(found), 1)
	assert.Equal(t, found[0].Title, "myshortcuts")

	none, err := s.Search(ctx, "nothing")
	assert.NilError(t, err)
	assert.Equal(t, len(none), 0)
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.Get(ctx, "missing")
	assert.Assert(t, errors.Is(err, store.ErrNotFound))

	_, err = s.Children(ctx, "missing")
	assert.Assert(t, errors.Is(err, store.ErrNotFound))

	_, err = s.Create(ctx, store.CreateParams{ParentID: "missing", Title: "x"})
	assert.Assert(t, errors.Is(err, store.ErrNotFound))
}

func TestStore_CreateUnderBookmarkFails(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	bm, err := s.Create(ctx, store.CreateParams{Title: "site", URL: "https://example.com"})
	assert.NilError(t, err)

	_, err = s.Create(ctx, store.CreateParams{ParentID: bm.ID, Title: "child"})
	assert.ErrorContains(t, err, "not a folder")
}

func TestStore_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bookmarks.db")

	s, err := sqlite.Open(path)
	assert.NilError(t, err)
	created, err := s.Create(ctx, store.CreateParams{Title: "GitHub", URL: "https://github.com"})
	assert.NilError(t, err)
	assert.NilError(t, s.Close())

	s, err = sqlite.Open(path)
	assert.NilError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, created.ID)
	assert.NilError(t, err)
	assert.Equal(t, got.URL, "https://github.com")
	assert.Assert(t, got.CreatedAt.Equal(created.CreatedAt))
	assert.NilError(t, s.Ping(ctx))
}
