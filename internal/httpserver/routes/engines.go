package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
)

func init() { Register(registerEngines) }

func registerEngines(r chi.Router, d deps.Deps) {
	r.Route("/engines", func(r chi.Router) {
		r.Use(guard(d)...)
		r.Get("/", handlers.ListEngines(d))
		r.With(writeLimit(d)).Post("/", handlers.CreateEngine(d))
	})
}
