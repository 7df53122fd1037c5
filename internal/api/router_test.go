package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptorec/internal/domain/models"
	"github.com/guttosm/cryptorec/internal/ingestion"
)

var testRouterConfig = RouterConfig{
	RateLimitRequests: 100,
	RateLimitWindow:   time.Minute,
	RequestTimeout:    time.Second,
	AdminUser:         "admin",
	AdminPassword:     "secret",
}

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockRecService{
		ranges:  []models.NormalizedRange{{Symbol: "BTC", NormalizedRange: 0.4}},
		stats:   &models.SymbolStats{Symbol: models.BTC, Oldest: 1, Newest: 2, Min: 1, Max: 2},
		highest: &models.NormalizedRange{Symbol: "BTC", NormalizedRange: 0.1},
	}
	r := NewRouter(NewHandler(svc, &mockMaintainer{rep: &ingestion.Report{}}), testRouterConfig)

	cases := []struct {
		method string
		path   string
		auth   bool
		want   int
	}{
		{http.MethodGet, "/cryptos/normalized-range", false, http.StatusOK},
		{http.MethodGet, "/cryptos/normalized-range/highest?date=2022-01-01", false, http.StatusOK},
		{http.MethodGet, "/cryptos/BTC/stats", false, http.StatusOK},
		{http.MethodGet, "/cryptos/nope", false, http.StatusNotFound},
		{http.MethodPost, "/admin/ingest", false, http.StatusUnauthorized},
		{http.MethodPost, "/admin/ingest", true, http.StatusOK},
		{http.MethodDelete, "/admin/prices", true, http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth {
				req.SetBasicAuth("admin", "secret")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected X-Request-ID header to be set")
			}
		})
	}
}

func TestNewRouter_NoAdminWithoutMaintainer(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockRecService{}, nil), testRouterConfig)

	req := httptest.NewRequest(http.MethodPost, "/admin/ingest", nil)
	req.SetBasicAuth("admin", "secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestNewRouter_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testRouterConfig
	cfg.RateLimitRequests = 2
	r := NewRouter(NewHandler(&mockRecService{}, nil), cfg)

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cryptos/normalized-range", nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last)
	}
}
