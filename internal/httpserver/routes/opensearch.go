package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
)

func init() { Register(registerOpenSearch) }

func registerOpenSearch(r chi.Router, d deps.Deps) {
	r.With(guard(d)...).Get("/opensearch.xml", handlers.OpenSearch(d))
}
