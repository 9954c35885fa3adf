package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
)

func init() { Register(registerShortcuts) }

func registerShortcuts(r chi.Router, d deps.Deps) {
	r.Route("/shortcuts", func(r chi.Router) {
		r.Use(guard(d)...)
		r.Get("/", handlers.ListShortcuts(d))
		r.Get("/check", handlers.CheckShortcut(d))
		r.With(writeLimit(d)).Post("/", handlers.CreateShortcut(d))
	})
}
