package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"FreightIQ/internal/repository"
	"FreightIQ/internal/service/market"
	"FreightIQ/internal/service/rates"
	"FreightIQ/internal/usecase"
	applogger "FreightIQ/pkg/logger"

	"github.com/labstack/echo/v4"
)

type fixedRand struct{ v float64 }

func (r fixedRand) Float64() float64 { return r.v }

type nopMetrics struct{}

func (nopMetrics) RecordQuote(string, float64)   {}
func (nopMetrics) RecordEvent(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

func newTestHandler(t *testing.T) (*QuotesHandler, *repository.FileEventStore, *echo.Echo) {
	t.Helper()
	dir := t.TempDir()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store, err := repository.NewFileEventStore(
		filepath.Join(dir, "events.json"), filepath.Join(dir, "analytics.json"), 16, log)
	if err != nil {
		t.Fatalf("NewFileEventStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	costs := rates.NewService(rates.WithRand(fixedRand{0.5}), rates.WithDelay(0))
	mkt := market.NewService(market.WithRand(fixedRand{0.5}), market.WithDelay(0))
	engine := usecase.NewQuoteEngine()
	quoter := usecase.NewQuoter(costs, mkt, engine, store, nopMetrics{})
	recorder := usecase.NewEventRecorder(store, nopMetrics{}, log)
	analytics := usecase.NewAnalyticsService(store, usecase.WithAnalyticsRand(fixedRand{0.5}))

	h := NewQuotesHandler(log, quoter, recorder, analytics)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, store, e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPredictRateReturnsQuote(t *testing.T) {
	_, _, e := newTestHandler(t)

	body := `{"origin":"Shanghai","destination":"Los Angeles","cargoType":"general","weight":1000,"volume":5,"forwarderId":"forwarder-001"}`
	rec := doJSON(e, http.MethodPost, "/api/predict-rate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		RequestID      string  `json:"requestId"`
		PredictedPrice float64 `json:"predictedPrice"`
		Confidence     float64 `json:"confidence"`
		ConfidenceBand struct {
			Lower float64 `json:"lower"`
			Upper float64 `json:"upper"`
		} `json:"confidenceBand"`
		Breakdown struct {
			BaseCost float64 `json:"baseCost"`
			Route    string  `json:"route"`
			Currency string  `json:"currency"`
		} `json:"breakdown"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.RequestID == "" {
		t.Fatal("requestId missing")
	}
	if resp.PredictedPrice <= 0 {
		t.Fatalf("predictedPrice = %v", resp.PredictedPrice)
	}
	if resp.Confidence < 0.5 || resp.Confidence > 0.95 {
		t.Fatalf("confidence = %v out of range", resp.Confidence)
	}
	if !(resp.ConfidenceBand.Lower <= resp.PredictedPrice && resp.PredictedPrice <= resp.ConfidenceBand.Upper) {
		t.Fatalf("band [%v,%v] does not contain price %v",
			resp.ConfidenceBand.Lower, resp.ConfidenceBand.Upper, resp.PredictedPrice)
	}
	if resp.Breakdown.Route != "Shanghai-Los Angeles" {
		t.Fatalf("route = %q", resp.Breakdown.Route)
	}
	if resp.Breakdown.Currency != "USD" {
		t.Fatalf("currency = %q", resp.Breakdown.Currency)
	}
}

func TestPredictRateMissingWeightIsRejectedWithoutSideEffects(t *testing.T) {
	_, store, e := newTestHandler(t)

	body := `{"origin":"Shanghai","destination":"Los Angeles","cargoType":"general"}`
	rec := doJSON(e, http.MethodPost, "/api/predict-rate", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("error field missing")
	}

	snap, _, err := store.Analytics(context.Background(), 30)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if snap.TotalRequests != 0 {
		t.Fatalf("TotalRequests = %d, want 0 after rejected request", snap.TotalRequests)
	}
}

func TestConfirmBookingLogsEvent(t *testing.T) {
	_, store, e := newTestHandler(t)

	body := `{"requestId":"req-1","bookingId":"bk-1","finalPrice":2500.50,"forwarderId":"forwarder-001"}`
	rec := doJSON(e, http.MethodPost, "/api/confirm-booking", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success   bool   `json:"success"`
		BookingID string `json:"bookingId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if !resp.Success || resp.BookingID != "bk-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	snap, _, err := store.Analytics(context.Background(), 30)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if snap.TotalBookings != 1 {
		t.Fatalf("TotalBookings = %d, want 1", snap.TotalBookings)
	}
}

func TestDeclineQuoteRequiresRequestID(t *testing.T) {
	_, store, e := newTestHandler(t)

	rec := doJSON(e, http.MethodPost, "/api/decline-quote", `{"reason":"too expensive"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/decline-quote", `{"requestId":"req-9","reason":"too expensive"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	snap, _, err := store.Analytics(context.Background(), 30)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if snap.TotalDeclines != 1 {
		t.Fatalf("TotalDeclines = %d, want 1", snap.TotalDeclines)
	}
}

func TestAnalyticsCountersStableAcrossReads(t *testing.T) {
	_, _, e := newTestHandler(t)

	doJSON(e, http.MethodPost, "/api/confirm-booking", `{"requestId":"r1","bookingId":"b1","finalPrice":100}`)
	doJSON(e, http.MethodPost, "/api/decline-quote", `{"requestId":"r2"}`)

	read := func() (int64, int64, float64) {
		rec := doJSON(e, http.MethodGet, "/api/analytics", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			TotalBookings int64   `json:"totalBookings"`
			TotalDeclines int64   `json:"totalDeclines"`
			WinRate       float64 `json:"winRate"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("parse response: %v", err)
		}
		return resp.TotalBookings, resp.TotalDeclines, resp.WinRate
	}

	b1, d1, w1 := read()
	b2, d2, w2 := read()
	if b1 != b2 || d1 != d2 || w1 != w2 {
		t.Fatalf("counters changed between reads: %v/%v/%v vs %v/%v/%v", b1, d1, w1, b2, d2, w2)
	}
	if b1 != 1 || d1 != 1 || w1 != 0.5 {
		t.Fatalf("counters = %v/%v/%v, want 1/1/0.5", b1, d1, w1)
	}
}

func TestHealthReportsService(t *testing.T) {
	_, _, e := newTestHandler(t)

	rec := doJSON(e, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Fatalf("status = %q", resp.Status)
	}
	if resp.Service != "freight-rate-api" {
		t.Fatalf("service = %q", resp.Service)
	}
}
