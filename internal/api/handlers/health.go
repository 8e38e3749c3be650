package handlers

import (
	"context"
	"net/http"
	"removal-pricing-service/internal/domain"
)

// PricingData is satisfied by services.DataLoader.
type PricingData interface {
	Get(ctx context.Context) (*domain.PricingData, error)
}

type HealthHandler struct {
	Data PricingData
}

// Health reports liveness plus the loaded pricing data version. It answers 503 while
// the catalog or pricing configuration cannot be loaded.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Data == nil {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	data, err := h.Data.Get(r.Context())
	if err != nil {
		writeServiceError(w, r, "health", err)
		return
	}

	res := map[string]string{"status": "ok", "dataSourceVersion": data.Version()}
	writeJSON(w, r, http.StatusOK, res)
}
