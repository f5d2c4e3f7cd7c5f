package handlers

import (
	"net/http"
	"warehouse-cost-service/internal/api/dto"
	"warehouse-cost-service/internal/services"
)

// CatalogHandler exposes the reference tables the engine prices against.
type CatalogHandler struct {
	Engine *services.Engine
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	cat := h.Engine.Catalog()
	res := dto.CatalogResponse{
		Hub:     cat.Hub,
		Items:   cat.Items,
		Centers: make([]dto.CenterResponse, 0, len(cat.Centers)),
	}
	for _, c := range cat.Centers {
		res.Centers = append(res.Centers, dto.CenterResponse{
			ID:            c.ID,
			DistanceToHub: c.DistanceToHub,
			Stock:         c.Stock,
		})
	}

	w.Header().Set("X-Catalog-Fingerprint", h.Engine.Fingerprint())
	writeJSON(w, r, http.StatusOK, res)
}
