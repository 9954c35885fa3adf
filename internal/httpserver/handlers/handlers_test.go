package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/myshortcuts/internal/index"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/scheduler"
	"github.com/MrSnakeDoc/myshortcuts/internal/store/sqlite"
)

func newDeps(t *testing.T) deps.Deps {
	t.Helper()
	ctx := context.Background()

	tree, err := sqlite.Open(filepath.Join(t.TempDir(), "bookmarks.db"))
	assert.NilError(t, err)
	t.Cleanup(func() { tree.Close() })

	cat := catalog.New(tree, logger.NewNop())
	idx := index.NewMemoryIndex()
	syncer := scheduler.NewSyncer(cat, idx, logger.NewNop(), 0, nil)

	_, err = cat.SaveShortcut(ctx, "GitHub", "https://github.com")
	assert.NilError(t, err)
	_, err = cat.SaveShortcut(ctx, "Gmail", "https://mail.google.com/?a=1&b=2")
	assert.NilError(t, err)
	_, err = cat.SaveSearchEngine(ctx, "g", "https://www.google.com/search?q=%s")
	assert.NilError(t, err)
	assert.NilError(t, syncer.Sync(ctx))

	return deps.Deps{
		Logger:        logger.NewNop(),
		StartTime:     time.Now().Add(-time.Minute),
		Version:       "test",
		Store:         tree,
		StoreKind:     "sqlite",
		Catalog:       cat,
		MemoryIndex:   idx,
		Syncer:        syncer,
		FallbackURL:   "https://duckduckgo.com/?q=%s",
		ReloadTrigger: make(chan struct{}, 1),
	}
}

func do(h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h(rec, r)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	assert.NilError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestSuggestJSON(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Suggest(d), http.MethodGet, "/suggest?q=gi", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, rec.Header().Get("Content-Type"), "application/json")

	var body struct {
		Query       string `json:"query"`
		Suggestions []struct {
			Content     string `json:"content"`
			Description string `json:"description"`
			Rank        int    `json:"rank"`
		} `json:"suggestions"`
	}
	decode(t, rec, &body)

	assert.Equal(t, body.Query, "gi")
	assert.Equal(t, len(body.Suggestions), 2)
	assert.Equal(t, body.Suggestions[0].Content, "GitHub")
	assert.Equal(t, body.Suggestions[0].Description, "[Selected] GitHub - https://github.com")
	assert.Equal(t, body.Suggestions[1].Description, `Search for "gi"`)
	assert.Equal(t, body.Suggestions[1].Rank, 1)
}

func TestSuggestEmptyQuery(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Suggest(d), http.MethodGet, "/suggest?q=", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, is.Contains(rec.Body.String(), `"suggestions":[]`))
}

func TestSuggestOpenSearch(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Suggest(d), http.MethodGet, "/suggest?format=opensearch&q=g", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, rec.Header().Get("Content-Type"), "application/x-suggestions+json")

	var body []json.RawMessage
	decode(t, rec, &body)
	assert.Equal(t, len(body), 4)

	var contents, urls []string
	assert.NilError(t, json.Unmarshal(body[1], &contents))
	assert.NilError(t, json.Unmarshal(body[3], &urls))

	// shorter label first
	assert.DeepEqual(t, contents, []string{"Gmail", "GitHub", "g"})
	assert.DeepEqual(t, urls, []string{
		"https://mail.google.com/?a=1&b=2",
		"https://github.com",
		"https://duckduckgo.com/?q=g",
	})
}

func TestSuggestOpenSearchAlias(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Suggest(d), http.MethodGet, "/suggest?format=opensearch&q=g+golang+generics", "")

	var body []json.RawMessage
	decode(t, rec, &body)

	var urls []string
	assert.NilError(t, json.Unmarshal(body[3], &urls))
	assert.DeepEqual(t, urls, []string{"https://www.google.com/search?q=golang%20generics"})
}

func TestSearchRedirects(t *testing.T) {
	d := newDeps(t)

	tests := []struct {
		name        string
		target      string
		location    string
		disposition string
	}{
		{"shortcut", "/search?q=gi", "https://github.com", "currentTab"},
		{"alias", "/search?q=g+hello+world", "https://www.google.com/search?q=hello%20world", "currentTab"},
		{"fallback", "/search?q=nothing+here", "https://duckduckgo.com/?q=nothing%20here", "currentTab"},
		{"empty", "/search?q=", "https://duckduckgo.com/?q=", "currentTab"},
		{"direct", "/search?q=https://example.com/x", "https://example.com/x", "currentTab"},
		{"disposition", "/search?q=gi&disposition=newBackgroundTab", "https://github.com", "newBackgroundTab"},
		{"internal endpoint", "/search?q=/inf", "/infra", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(handlers.Search(d), http.MethodGet, tt.target, "")
			assert.Equal(t, rec.Code, http.StatusFound)
			assert.Equal(t, rec.Header().Get("Location"), tt.location)
			assert.Equal(t, rec.Header().Get(handlers.DispositionHeader), tt.disposition)
		})
	}
}

func TestSearchAmbiguousInternalEndpointFallsThrough(t *testing.T) {
	d := newDeps(t)

	// "/" prefixes every endpoint
	rec := do(handlers.Search(d), http.MethodGet, "/search?q=/", "")
	assert.Equal(t, rec.Code, http.StatusFound)
	assert.Equal(t, rec.Header().Get("Location"), "https://duckduckgo.com/?q=%2F")
}

func TestSearchJSON(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Search(d), http.MethodGet, "/search?format=json&q=gm&disposition=newForegroundTab", "")
	assert.Equal(t, rec.Code, http.StatusOK)

	var res struct {
		URL         string `json:"url"`
		Kind        string `json:"kind"`
		Disposition string `json:"disposition"`
		Label       string `json:"label"`
	}
	decode(t, rec, &res)
	assert.Equal(t, res.URL, "https://mail.google.com/?a=1&b=2")
	assert.Equal(t, res.Kind, "shortcut")
	assert.Equal(t, res.Disposition, "newForegroundTab")
	assert.Equal(t, res.Label, "Gmail")
}

func TestSearchInvalidDisposition(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Search(d), http.MethodGet, "/search?q=gi&disposition=popup", "")
	assert.Equal(t, rec.Code, http.StatusBadRequest)
	assert.Assert(t, is.Contains(rec.Body.String(), "invalid_disposition"))
}

func TestCreateShortcut(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.CreateShortcut(d), http.MethodPost, "/shortcuts", `{"name":" Docs ","url":"https://docs.example.com"}`)
	assert.Equal(t, rec.Code, http.StatusCreated)

	var node struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	decode(t, rec, &node)
	assert.Assert(t, node.ID != "")
	assert.Equal(t, node.Title, "Docs")

	// index refreshed synchronously
	assert.Equal(t, d.MemoryIndex.Count(), 3)
}

func TestCreateShortcutDuplicate(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.CreateShortcut(d), http.MethodPost, "/shortcuts", `{"name":"GitHub","url":"https://github.example.org"}`)
	assert.Equal(t, rec.Code, http.StatusConflict)

	var body struct {
		Error            string `json:"error"`
		Message          string `json:"message"`
		ExistingBookmark struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"existingBookmark"`
	}
	decode(t, rec, &body)
	assert.Equal(t, body.Error, "duplicate")
	assert.Equal(t, body.Message, `Name already used: "GitHub"`)
	assert.Equal(t, body.ExistingBookmark.URL, "https://github.com")
}

func TestCreateShortcutInvalid(t *testing.T) {
	d := newDeps(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"  ","url":"https://x"}`},
		{"missing url", `{"name":"x"}`},
		{"malformed", `{"name":`},
		{"unknown field", `{"name":"x","url":"https://x","tags":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(handlers.CreateShortcut(d), http.MethodPost, "/shortcuts", tt.body)
			assert.Equal(t, rec.Code, http.StatusBadRequest)
		})
	}
}

func TestCreateEngine(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.CreateEngine(d), http.MethodPost, "/engines", `{"name":"wiki","url":"https://en.wikipedia.org/wiki/"}`)
	assert.Equal(t, rec.Code, http.StatusBadRequest)

	rec = do(handlers.CreateEngine(d), http.MethodPost, "/engines", `{"name":"Wiki","url":"https://en.wikipedia.org/w/index.php?search=%s"}`)
	assert.Equal(t, rec.Code, http.StatusCreated)
	assert.Equal(t, d.MemoryIndex.AliasCount(), 2)

	rec = do(handlers.ListEngines(d), http.MethodGet, "/engines", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, is.Contains(rec.Body.String(), `"names":["wiki"]`))
}

func TestCheckShortcut(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.CheckShortcut(d), http.MethodGet, "/shortcuts/check?name=GitHub", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	var body struct {
		IsDuplicate      bool            `json:"isDuplicate"`
		ExistingBookmark json.RawMessage `json:"existingBookmark"`
	}
	decode(t, rec, &body)
	assert.Assert(t, body.IsDuplicate)
	assert.Assert(t, len(body.ExistingBookmark) > 0)

	rec = do(handlers.CheckShortcut(d), http.MethodGet, "/shortcuts/check?name=github", "")
	assert.Equal(t, rec.Body.String(), "{\"isDuplicate\":false}\n")

	rec = do(handlers.CheckShortcut(d), http.MethodGet, "/shortcuts/check", "")
	assert.Equal(t, rec.Code, http.StatusBadRequest)
}

func TestListShortcuts(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.ListShortcuts(d), http.MethodGet, "/shortcuts", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	var body struct {
		Count     int `json:"count"`
		Shortcuts []struct {
			Label  string `json:"label"`
			Target string `json:"target"`
		} `json:"shortcuts"`
	}
	decode(t, rec, &body)
	assert.Equal(t, body.Count, 2)
	assert.Equal(t, body.Shortcuts[0].Label, "GitHub")
}

func TestReload(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Reload(d), http.MethodPost, "/reload", "")
	assert.Equal(t, rec.Code, http.StatusAccepted)

	// trigger not consumed yet
	rec = do(handlers.Reload(d), http.MethodPost, "/reload", "")
	assert.Equal(t, rec.Code, http.StatusTooManyRequests)

	<-d.ReloadTrigger
	d.SeedReloadTrigger = make(chan struct{}, 1)
	rec = do(handlers.Reload(d), http.MethodPost, "/reload", "")
	assert.Equal(t, rec.Code, http.StatusAccepted)
	assert.Equal(t, rec.Body.String(), "{\"snapshot\":true,\"seed\":true}\n")
}

func TestOpenSearch(t *testing.T) {
	d := newDeps(t)
	d.PublicURL = "https://go.example.com"

	rec := do(handlers.OpenSearch(d), http.MethodGet, "/opensearch.xml", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Equal(t, rec.Header().Get("Content-Type"), "application/opensearchdescription+xml")

	body := rec.Body.String()
	assert.Assert(t, is.Contains(body, `template="https://go.example.com/search?q={searchTerms}"`))
	assert.Assert(t, is.Contains(body, `template="https://go.example.com/suggest?format=opensearch&amp;q={searchTerms}"`))
	assert.Assert(t, is.Contains(body, "<ShortName>myshortcuts</ShortName>"))
}

func TestOpenSearchDerivesBaseFromRequest(t *testing.T) {
	d := newDeps(t)

	r := httptest.NewRequest(http.MethodGet, "/opensearch.xml", nil)
	r.Host = "links.home.lan:8080"
	r.Header.Set("X-Forwarded-Proto", "https")
	rec := httptest.NewRecorder()
	handlers.OpenSearch(d)(rec, r)

	assert.Assert(t, is.Contains(rec.Body.String(), `template="https://links.home.lan:8080/search?q={searchTerms}"`))
}

func TestProbes(t *testing.T) {
	d := newDeps(t)

	rec := do(handlers.Healthz(d), http.MethodGet, "/healthz", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	assert.Assert(t, is.Contains(rec.Body.String(), `"status":"ok"`))

	rec = do(handlers.Readyz(d), http.MethodGet, "/readyz", "")
	assert.Equal(t, rec.Code, http.StatusOK)

	rec = do(handlers.Infra(d), http.MethodGet, "/infra", "")
	assert.Equal(t, rec.Code, http.StatusOK)
	var infra struct {
		Status     string `json:"status"`
		Components map[string]struct {
			OK        bool `json:"ok"`
			Shortcuts *int `json:"shortcuts"`
		} `json:"components"`
	}
	decode(t, rec, &infra)
	assert.Equal(t, infra.Status, "ok")
	assert.Equal(t, *infra.Components["index"].Shortcuts, 2)
}

func TestReadyzBeforeFirstSnapshot(t *testing.T) {
	d := newDeps(t)
	d.MemoryIndex = index.NewMemoryIndex()

	rec := do(handlers.Readyz(d), http.MethodGet, "/readyz", "")
	assert.Equal(t, rec.Code, http.StatusServiceUnavailable)

	rec = do(handlers.Infra(d), http.MethodGet, "/infra", "")
	assert.Assert(t, is.Contains(rec.Body.String(), `"status":"critical"`))
}

func TestInfraStoreDown(t *testing.T) {
	d := newDeps(t)
	assert.NilError(t, d.Store.Close())

	rec := do(handlers.Infra(d), http.MethodGet, "/infra", "")
	assert.Assert(t, is.Contains(rec.Body.String(), `"status":"degraded"`))
}
