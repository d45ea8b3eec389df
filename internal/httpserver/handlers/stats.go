package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/trusteddatanow/catalog/internal/httpserver/deps"
	"github.com/trusteddatanow/catalog/internal/logger"
)

type statsResponse struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	Public   int            `json:"public"`
	ByType   map[string]int `json:"byType"`
}

// Stats summarizes the catalog: record counts and the tag distribution.
func Stats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resources, err := d.Catalog.Get()
		if err != nil {
			d.Logger.Error("failed to load catalog", logger.Error(err))
			http.Error(w, "catalog unavailable", http.StatusServiceUnavailable)
			return
		}

		stats := statsResponse{
			Total:  len(resources),
			ByType: map[string]int{},
		}
		for _, res := range resources {
			if res.Active {
				stats.Active++
			} else {
				stats.Inactive++
			}
			if res.Public {
				stats.Public++
			}
			for _, tag := range res.Type {
				stats.ByType[tag]++
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(stats)
	}
}
