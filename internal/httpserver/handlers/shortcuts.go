package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/myshortcuts/internal/catalog"
	"github.com/MrSnakeDoc/myshortcuts/internal/domain"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
)

type saveRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type duplicateResponse struct {
	Error            string     `json:"error"`
	ExistingBookmark store.Node `json:"existingBookmark"`
	Message          string     `json:"message"`
}

type checkResponse struct {
	IsDuplicate      bool        `json:"isDuplicate"`
	ExistingBookmark *store.Node `json:"existingBookmark,omitempty"`
}

type shortcutsResponse struct {
	Count      int                `json:"count"`
	LastReload string             `json:"last_reload,omitempty"`
	Shortcuts  []domain.Candidate `json:"shortcuts"`
}

// ListShortcuts returns the shortcuts the engine currently ranks against.
func ListShortcuts(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.MemoryIndex.Snapshot()
		writeJSON(w, http.StatusOK, shortcutsResponse{
			Count:      len(snap.Shortcuts),
			LastReload: formatReload(snap.LoadedAt),
			Shortcuts:  snap.Shortcuts,
		})
	}
}

// CheckShortcut reports whether a shortcut named exactly ?name= exists.
func CheckShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeError(w, http.StatusBadRequest, "invalid", catalog.ErrEmptyName.Error())
			return
		}

		existing, err := d.Catalog.CheckDuplicate(r.Context(), name)
		if err != nil {
			d.Logger.Error("duplicate check failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal", "duplicate check failed")
			return
		}

		writeJSON(w, http.StatusOK, checkResponse{IsDuplicate: existing != nil, ExistingBookmark: existing})
	}
}

// CreateShortcut saves {name, url} into the shortcuts folder.
func CreateShortcut(d deps.Deps) http.HandlerFunc {
	return saveHandler(d, d.Catalog.SaveShortcut)
}

// CreateEngine saves {name, url} into the search-engines folder; the URL
// must carry the %s placeholder.
func CreateEngine(d deps.Deps) http.HandlerFunc {
	return saveHandler(d, d.Catalog.SaveSearchEngine)
}

func saveHandler(d deps.Deps, save func(context.Context, string, string) (store.Node, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid", "body must be {\"name\": ..., \"url\": ...}")
			return
		}

		node, err := save(r.Context(), req.Name, req.URL)
		var dup *catalog.DuplicateError
		switch {
		case errors.As(err, &dup):
			writeJSON(w, http.StatusConflict, duplicateResponse{
				Error:            "duplicate",
				ExistingBookmark: dup.Existing,
				Message:          dup.Error(),
			})
			return
		case errors.Is(err, catalog.ErrEmptyName),
			errors.Is(err, catalog.ErrNoURL),
			errors.Is(err, catalog.ErrNoPlaceholder):
			writeError(w, http.StatusBadRequest, "invalid", err.Error())
			return
		case err != nil:
			d.Logger.Error("save failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "internal", "save failed")
			return
		}

		// refresh now so the next keystroke already sees the new entry
		if d.Syncer != nil {
			if err := d.Syncer.Sync(r.Context()); err != nil {
				d.Logger.Warn("post-save sync failed", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusCreated, node)
	}
}
