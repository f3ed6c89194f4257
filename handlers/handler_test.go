package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"topup-server/commons/carriers"
	"topup-server/db"
	"topup-server/middlewares"
	"topup-server/migrations"
	"topup-server/models"
	"topup-server/pricing"
	"topup-server/purchase"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := migrations.Run(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			sqlDB.Close()
		}
	})

	idx, err := carriers.BuildIndex(carriers.DefaultTable())
	if err != nil {
		t.Fatalf("BuildIndex failed: %v", err)
	}
	catalog := pricing.DefaultCatalog()
	mock := purchase.NewMockService(catalog, 0, 0, 0)
	sessions := db.NewSessionStore(conn)
	transactions := db.NewTransactionStore(conn)

	return &Handler{
		DB:           conn,
		Carriers:     idx,
		Catalog:      catalog,
		Sessions:     sessions,
		Transactions: transactions,
		Submitter: purchase.NewSubmitter(purchase.SubmitterConfig{
			Carriers: idx,
			Catalog:  catalog,
			Service:  mock,
			Savings:  sessions,
			Recorder: transactions,
		}),
		Balances:   mock,
		SessionTTL: time.Hour,
	}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("Expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func newSession(t *testing.T, h *Handler) *models.Session {
	t.Helper()
	session, err := h.Sessions.Create(context.Background(), time.Hour, "", "")
	if err != nil {
		t.Fatalf("Create session failed: %v", err)
	}
	return session
}

func TestGetCountriesHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/countries", nil), rec)

	if err := h.GetCountriesHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	var res CountryListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(res.Data) != 7 {
		t.Fatalf("Expected 7 countries, got %d", len(res.Data))
	}
	if res.Data[0].Code != "NG" || len(res.Data[0].Networks) != 4 {
		t.Errorf("Unexpected first country: %+v", res.Data[0])
	}
}

func TestGetCountryNetworksHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("code")
	c.SetParamValues("ke")
	if err := h.GetCountryNetworksHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res NetworkListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.Country.Code != "KE" || len(res.Data) != 3 {
		t.Errorf("Unexpected response: %+v", res)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("code")
	c.SetParamValues("ZZ")
	if code := httpStatus(t, h.GetCountryNetworksHandler(c)); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestGetNetworkHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("mtn-ng")
	if err := h.GetNetworkHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res NetworkDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.DisplayName != "MTN Nigeria" || len(res.Prefixes) == 0 {
		t.Errorf("Unexpected network: %+v", res)
	}

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")
	if code := httpStatus(t, h.GetNetworkHandler(c)); code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestVerifyPhoneHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()

	tests := []struct {
		name     string
		body     string
		valid    bool
		carrier  string
		mismatch bool
	}{
		{"matching network", `{"phone_number":"08031234567","network":"mtn-ng"}`, true, "MTN Nigeria", false},
		{"other network", `{"phone_number":"08031234567","network":"glo-ng"}`, true, "MTN Nigeria", true},
		{"bad format", `{"phone_number":"12345"}`, false, "", false},
		{"unknown prefix", `{"phone_number":"09991234567"}`, false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/v1/phone/verify", tt.body), rec)
			if err := h.VerifyPhoneHandler(c); err != nil {
				t.Fatalf("Handler failed: %v", err)
			}
			var res VerifyPhoneResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if res.Valid != tt.valid || res.Carrier != tt.carrier || res.Mismatch != tt.mismatch {
				t.Errorf("Unexpected response: %+v", res)
			}
			if tt.mismatch && !strings.Contains(res.Notice, "Cross-network purchases are supported") {
				t.Errorf("Expected cross-network notice, got %q", res.Notice)
			}
			if !tt.valid && res.Message == "" {
				t.Error("Expected a reason for invalid numbers")
			}
		})
	}

	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/phone/verify", `{}`), httptest.NewRecorder())
	if code := httpStatus(t, h.VerifyPhoneHandler(c)); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing phone, got %d", code)
	}
}

func TestGetPricingHandler(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/v1/pricing", nil), rec)

	if err := h.GetPricingHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res PricingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(res.Tiers) != 3 || len(res.Bundles) != 6 {
		t.Fatalf("Unexpected catalog sizes: %d tiers, %d bundles", len(res.Tiers), len(res.Bundles))
	}
	if res.Tiers[0].MinPayable != "98.00" {
		t.Errorf("Expected basic tier minimum payable 98.00, got %s", res.Tiers[0].MinPayable)
	}
	if res.Bundles[1].ID != "2gb" || res.Bundles[1].Savings != 150 {
		t.Errorf("Unexpected 2gb bundle: %+v", res.Bundles[1])
	}
}

func TestPurchaseAirtimeHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()
	session := newSession(t, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/purchases/airtime",
		`{"network":"mtn-ng","phone_number":"08031234567","amount":1000,"tier":"premium"}`), rec)
	c.Set(middlewares.SessionContextKey, session)

	if err := h.PurchaseAirtimeHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.Status != purchase.StatusSuccess || res.AmountDisplay != "950.00" || res.SavingsDisplay != "50.00" {
		t.Errorf("Unexpected response: %+v", res)
	}
	if res.TotalSavings != 50 {
		t.Errorf("Expected total savings 50, got %v", res.TotalSavings)
	}
}

func TestPurchaseAirtimeHandlerDefaultsTier(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(jsonRequest(http.MethodPost, "/v1/purchases/airtime",
		`{"network":"mtn-ng","phone_number":"08031234567","amount":1000}`), rec)
	c.Set(middlewares.SessionContextKey, newSession(t, h))

	if err := h.PurchaseAirtimeHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.AmountDisplay != "980.00" {
		t.Errorf("Expected basic tier discount, got %s", res.AmountDisplay)
	}
}

func TestPurchaseAirtimeHandlerRejections(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()
	session := newSession(t, h)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"network":`, http.StatusBadRequest},
		{"missing phone", `{"network":"mtn-ng","amount":1000}`, http.StatusBadRequest},
		{"missing amount", `{"network":"mtn-ng","phone_number":"08031234567"}`, http.StatusBadRequest},
		{"below tier minimum", `{"network":"mtn-ng","phone_number":"08031234567","amount":400,"tier":"premium"}`, http.StatusBadRequest},
		{"unknown tier", `{"network":"mtn-ng","phone_number":"08031234567","amount":1000,"tier":"gold"}`, http.StatusBadRequest},
		{"invalid phone", `{"network":"mtn-ng","phone_number":"12345","amount":1000}`, http.StatusBadRequest},
		{"unknown network", `{"network":"vodafone-gh","phone_number":"08031234567","amount":1000}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := e.NewContext(jsonRequest(http.MethodPost, "/v1/purchases/airtime", tt.body), httptest.NewRecorder())
			c.Set(middlewares.SessionContextKey, session)
			if code := httpStatus(t, h.PurchaseAirtimeHandler(c)); code != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, code)
			}
		})
	}
}

func TestPurchaseBundleHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()
	session := newSession(t, h)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/purchases/bundle",
		`{"network":"glo-ng","phone_number":"08051234567","bundle_id":"2gb"}`), rec)
	c.Set(middlewares.SessionContextKey, session)
	if err := h.PurchaseBundleHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res PurchaseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.Amount != 850 || res.Status != purchase.StatusSuccess || res.Kind != "BUNDLE" {
		t.Errorf("Unexpected response: %+v", res)
	}

	c = e.NewContext(jsonRequest(http.MethodPost, "/v1/purchases/bundle",
		`{"network":"glo-ng","phone_number":"08051234567","bundle_id":"3tb"}`), httptest.NewRecorder())
	c.Set(middlewares.SessionContextKey, session)
	if code := httpStatus(t, h.PurchaseBundleHandler(c)); code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown bundle, got %d", code)
	}
}

func TestPurchaseHandlerRequiresSession(t *testing.T) {
	h := newTestHandler(t)
	c := newEcho().NewContext(jsonRequest(http.MethodPost, "/v1/purchases/bundle",
		`{"network":"glo-ng","phone_number":"08051234567","bundle_id":"2gb"}`), httptest.NewRecorder())
	if code := httpStatus(t, h.PurchaseBundleHandler(c)); code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", code)
	}
}

func TestGetTransactionsHandler(t *testing.T) {
	h := newTestHandler(t)
	e := newEcho()
	session := newSession(t, h)

	for _, bundle := range []string{"1gb", "2gb", "5gb"} {
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/purchases/bundle",
			`{"network":"glo-ng","phone_number":"08051234567","bundle_id":"`+bundle+`"}`), httptest.NewRecorder())
		c.Set(middlewares.SessionContextKey, session)
		if err := h.PurchaseBundleHandler(c); err != nil {
			t.Fatalf("Purchase failed: %v", err)
		}
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/transactions?page=1&page_size=2", nil), rec)
	c.Set(middlewares.SessionContextKey, session)
	if err := h.GetTransactionsHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}

	var res TransactionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if res.Pagination.Total != 3 || res.Pagination.TotalPages != 2 || len(res.Data) != 2 {
		t.Errorf("Unexpected pagination: %+v (%d items)", res.Pagination, len(res.Data))
	}
	if res.Data[0].BundleID == nil || *res.Data[0].BundleID != "5gb" {
		t.Errorf("Expected newest purchase first, got %+v", res.Data[0])
	}
}

func TestGetNetworkBalancesHandler(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/v1/networks/balances", nil), rec)

	if err := h.GetNetworkBalancesHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	var res BalanceListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(res.Data) != 17 {
		t.Errorf("Expected 17 balances, got %d", len(res.Data))
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t)
	rec := httptest.NewRecorder()
	c := newEcho().NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)

	if err := h.HealthHandler(c); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}
