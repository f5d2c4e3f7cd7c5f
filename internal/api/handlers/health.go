package handlers

import (
	"net/http"
	"warehouse-cost-service/internal/services"
)

// HealthHandler is a liveness check that also reports which pricing inputs are loaded.
type HealthHandler struct {
	Engine *services.Engine
}

func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	res := map[string]string{
		"status":      "ok",
		"hub":         h.Engine.Catalog().Hub,
		"fingerprint": h.Engine.Fingerprint(),
	}
	writeJSON(w, r, http.StatusOK, res)
}
