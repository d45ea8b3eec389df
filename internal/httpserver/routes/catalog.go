package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/trusteddatanow/catalog/internal/httpserver/deps"
	"github.com/trusteddatanow/catalog/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Get("/api/resources", handlers.Resources(d))
	r.Get("/api/stats", handlers.Stats(d))
}
