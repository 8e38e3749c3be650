package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"removal-pricing-service/internal/domain"
	"strings"
	"testing"
)

type fakeQuotes struct {
	quoteErr  error
	getErr    error
	verifyErr error
	gotInput  domain.PricingInput
	snapshot  *domain.QuoteSnapshot
}

func (f *fakeQuotes) Quote(ctx context.Context, in domain.PricingInput) (*domain.PricingResult, *domain.QuoteSnapshot, error) {
	f.gotInput = in
	if f.quoteErr != nil {
		return nil, nil, f.quoteErr
	}
	res := &domain.PricingResult{AmountGbpMinor: 1200, SubtotalBeforeVat: 1000, VatAmount: 200, VatRate: 0.2, Tier: domain.TierStandard}
	res.Metadata.RequestID = "q-1"
	return res, &domain.QuoteSnapshot{ID: "q-1", Hash: "abc", AmountGbpMinor: 1200}, nil
}

func (f *fakeQuotes) Get(ctx context.Context, id string) (*domain.QuoteSnapshot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.snapshot, nil
}

func (f *fakeQuotes) VerifyAmount(ctx context.Context, id string, amount int64) (*domain.QuoteSnapshot, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &domain.QuoteSnapshot{ID: id, AmountGbpMinor: amount}, nil
}

const validBody = `{
	"items": [{"id": "armchair", "name": "Armchair", "quantity": 1, "weight": 25, "volume": 2, "fragile": true}],
	"pickup": {"address": "1 High St", "postcode": "RG1 1AA", "coordinates": {"lat": 51.4543, "lng": -0.9781},
		"propertyDetails": {"type": "house", "floors": 0, "hasLift": false, "hasParking": true}},
	"dropoffs": [{"address": "2 Broad St", "postcode": "OX1 3AA", "coordinates": {"lat": 51.752, "lng": -1.2577},
		"propertyDetails": {"type": "apartment", "floors": 3}, "itemIds": ["armchair"],
		"timeWindow": {"earliest": "2026-03-03T09:00:00Z", "latest": "2026-03-03T11:00:00Z"}}],
	"serviceLevel": "standard",
	"addOns": {"packing": true, "insurance": "basic"},
	"promoCode": "WELCOME10",
	"userContext": {"isReturningCustomer": true}
}`

func TestCreateMapsRequest(t *testing.T) {
	svc := &fakeQuotes{}
	h := &QuoteHandler{Service: svc}

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(validBody)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	in := svc.gotInput
	if len(in.Items) != 1 || in.Items[0].WeightKg != 25 || in.Items[0].VolumeM3 != 2 || !in.Items[0].Fragile {
		t.Errorf("items = %+v", in.Items)
	}
	if len(in.Dropoffs) != 1 || in.Dropoffs[0].Property.Floors != 3 || in.Dropoffs[0].TimeWindow == nil {
		t.Errorf("dropoffs = %+v", in.Dropoffs)
	}
	if in.Dropoffs[0].Property.Type != domain.PropertyApartment || in.Dropoffs[0].ItemIDs[0] != "armchair" {
		t.Errorf("dropoff property/items = %+v", in.Dropoffs[0])
	}
	if in.AddOns.Insurance != domain.InsuranceBasic || !in.UserContext.IsReturningCustomer || in.PromoCode != "WELCOME10" {
		t.Errorf("addOns/user/promo = %+v %+v %q", in.AddOns, in.UserContext, in.PromoCode)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["quoteId"] != "q-1" || body["snapshotHash"] != "abc" {
		t.Errorf("body = %v", body)
	}
	result := body["result"].(map[string]any)
	if result["amountGbpMinor"] != float64(1200) {
		t.Errorf("amount = %v", result["amountGbpMinor"])
	}
	if _, ok := result["surcharges"].([]any); !ok {
		t.Errorf("surcharges should be an empty array, got %v", result["surcharges"])
	}
}

func TestCreateRejectsBadBodies(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"unknown field": `{"items": [], "colour": "red"}`,
		"two objects":   `{} {}`,
		"wrong type":    `{"items": "sofa"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			h := &QuoteHandler{Service: &fakeQuotes{}}
			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCreateMethodNotAllowed(t *testing.T) {
	h := &QuoteHandler{Service: &fakeQuotes{}}
	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodGet, "/quotes", nil))

	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") != http.MethodPost {
		t.Fatalf("status = %d allow = %q", rec.Code, rec.Header().Get("Allow"))
	}
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&domain.ValidationError{Field: "items", Reason: "at least one item is required"}, http.StatusBadRequest},
		{&domain.DataSourceError{Resource: "catalog", Err: errors.New("missing")}, http.StatusServiceUnavailable},
		{fmt.Errorf("price: %w", domain.ErrAmountOutOfRange), http.StatusBadRequest},
		{fmt.Errorf("get: %w", domain.ErrSnapshotNotFound), http.StatusNotFound},
		{fmt.Errorf("verify: %w", domain.ErrAmountMismatch), http.StatusConflict},
		{fmt.Errorf("quote: %w", domain.ErrSnapshotExists), http.StatusConflict},
		{fmt.Errorf("verify: %w", domain.ErrSnapshotCorrupt), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := &QuoteHandler{Service: &fakeQuotes{quoteErr: tc.err}}
			rec := httptest.NewRecorder()
			h.Create(rec, httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(validBody)))

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("error body = %s", rec.Body)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	mux := http.NewServeMux()
	svc := &fakeQuotes{}
	h := &QuoteHandler{Service: svc}
	mux.HandleFunc("/quotes/{id}/verify", h.Verify)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quotes/q-9/verify", strings.NewReader(`{"amountGbpMinor": 4321}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var body struct {
		QuoteID  string `json:"quoteId"`
		Verified bool   `json:"verified"`
		Amount   int64  `json:"amountGbpMinor"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.QuoteID != "q-9" || !body.Verified || body.Amount != 4321 {
		t.Errorf("body = %+v", body)
	}

	svc.verifyErr = domain.ErrAmountMismatch
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quotes/q-9/verify", strings.NewReader(`{"amountGbpMinor": 1}`)))
	if rec.Code != http.StatusConflict {
		t.Fatalf("mismatch status = %d, want 409", rec.Code)
	}
}

func TestGetCorruptPayload(t *testing.T) {
	mux := http.NewServeMux()
	svc := &fakeQuotes{snapshot: &domain.QuoteSnapshot{ID: "q-1", Result: []byte("not json")}}
	mux.HandleFunc("/quotes/{id}", (&QuoteHandler{Service: svc}).Get)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/quotes/q-1", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

type fakeData struct{ err error }

func (f fakeData) Get(ctx context.Context) (*domain.PricingData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.PricingData{
		Catalog: domain.NewCatalog("cat-1", nil),
		Config:  &domain.PricingConfig{Version: "cfg-1"},
	}, nil
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	(&HealthHandler{Data: fakeData{}}).Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"dataSourceVersion":"cat-1:cfg-1"`) {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	h := &HealthHandler{Data: fakeData{err: &domain.DataSourceError{Resource: "catalog", Err: errors.New("missing")}}}
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
