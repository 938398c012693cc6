package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Stats summarizes a catalog for the header counters.
type Stats struct {
	Components int `json:"components"`
	Categories int `json:"categories"`
}

// RegisterRoutes mounts read-only catalog endpoints.
func RegisterRoutes(r chi.Router, h *Holder) {
	r.Get("/api/catalog", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Load().File())
	})

	r.Get("/api/catalog/{id}", func(w http.ResponseWriter, r *http.Request) {
		d, ok := h.Load().ByID(chi.URLParam(r, "id"))
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "component not found"})
			return
		}
		writeJSON(w, http.StatusOK, d)
	})

	r.Get("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Load().Categories())
	})

	r.Get("/api/categories/{name}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, h.Load().ByCategory(chi.URLParam(r, "name")))
	})

	r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		c := h.Load()
		writeJSON(w, http.StatusOK, Stats{Components: c.Count(), Categories: len(c.Categories())})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
