package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/deps"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/myshortcuts/internal/httpserver/mw"
)

func init() { Register(registerProbes) }

// Probes skip the Host check so orchestrators can reach them by IP.
func registerProbes(r chi.Router, d deps.Deps) {
	cidrs := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	r.With(cidrs).Get("/healthz", handlers.Healthz(d))
	r.With(cidrs).Get("/readyz", handlers.Readyz(d))
	r.With(cidrs).Get("/infra", handlers.Infra(d))
}
