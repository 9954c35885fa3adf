package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.With(append(guard(d), writeLimit(d))...).Post("/reload", handlers.Reload(d))
}
