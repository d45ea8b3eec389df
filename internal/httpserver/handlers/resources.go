package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/trusteddatanow/catalog/internal/domain"
	"github.com/trusteddatanow/catalog/internal/httpserver/deps"
	"github.com/trusteddatanow/catalog/internal/logger"
)

// Resources serves the catalog document as the static site consumes it:
// a JSON array of resource records.
func Resources(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := d.Catalog.Get()
		if err != nil {
			d.Logger.Error("failed to load catalog", logger.Error(err))
			http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}
		if resources == nil {
			resources = []*domain.Resource{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(resources)
	}
}
