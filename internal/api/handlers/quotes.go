package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"removal-pricing-service/internal/api/dto"
	"removal-pricing-service/internal/domain"
	"removal-pricing-service/internal/platform/obs"
	"strings"
)

// QuoteService is the subset of services.QuoteService the HTTP layer depends on.
type QuoteService interface {
	Quote(ctx context.Context, in domain.PricingInput) (*domain.PricingResult, *domain.QuoteSnapshot, error)
	Get(ctx context.Context, id string) (*domain.QuoteSnapshot, error)
	VerifyAmount(ctx context.Context, id string, amount int64) (*domain.QuoteSnapshot, error)
}

// QuoteHandler exposes quote issue, lookup and payment-amount verification.
type QuoteHandler struct {
	Service QuoteService
}

func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.QuoteRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, snap, err := h.Service.Quote(r.Context(), req.ToInput())
	if err != nil {
		writeServiceError(w, r, "create quote", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.QuoteResponse{
		QuoteID:      snap.ID,
		SnapshotHash: snap.Hash,
		Result:       dto.FromResult(res),
	})
}

func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "quote id is required")
		return
	}

	snap, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "get quote", err)
		return
	}

	var res domain.PricingResult
	if err := json.Unmarshal(snap.Result, &res); err != nil {
		writeServiceError(w, r, "get quote", errors.Join(domain.ErrSnapshotCorrupt, err))
		return
	}

	writeJSON(w, r, http.StatusOK, dto.FromSnapshot(snap, &res))
}

// Verify is called before payment capture: it succeeds only when the amount to be
// charged is exactly the amount the stored quote was issued for.
func (h *QuoteHandler) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "quote id is required")
		return
	}

	var req dto.VerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	snap, err := h.Service.VerifyAmount(r.Context(), id, req.AmountGbpMinor)
	if err != nil {
		writeServiceError(w, r, "verify quote", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.VerifyResponse{
		QuoteID:        snap.ID,
		Verified:       true,
		AmountGbpMinor: snap.AmountGbpMinor,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps domain errors to HTTP statuses. Unexpected errors are logged
// and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var vErr *domain.ValidationError
	var dsErr *domain.DataSourceError

	switch {
	case errors.As(err, &vErr):
		writeError(w, r, http.StatusBadRequest, vErr.Error())
	case errors.As(err, &dsErr):
		obs.Logf(r.Context(), op, "err=%v", err)
		writeError(w, r, http.StatusServiceUnavailable, "pricing data unavailable")
	case errors.Is(err, domain.ErrAmountOutOfRange):
		obs.Logf(r.Context(), op, "err=%v", err)
		writeError(w, r, http.StatusBadRequest, "quote amount out of range")
	case errors.Is(err, domain.ErrSnapshotNotFound):
		writeError(w, r, http.StatusNotFound, "quote not found")
	case errors.Is(err, domain.ErrAmountMismatch):
		writeError(w, r, http.StatusConflict, "amount does not match quote")
	case errors.Is(err, domain.ErrSnapshotExists):
		obs.Logf(r.Context(), op, "err=%v", err)
		writeError(w, r, http.StatusConflict, "quote already exists")
	default:
		obs.Logf(r.Context(), op, "err=%v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
