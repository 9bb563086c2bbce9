package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.Use(CORS())
	NewExperimentHandler().Register(router.Group("/api/v1"))
	return router
}

func validRequest() ExperimentRequest {
	return ExperimentRequest{
		Market:     MarketRequest{Spot: 100, Strike: 100, Maturity: 1, Rate: 0.01, Vol: 0.2},
		Simulation: SimulationRequest{Steps: 24, Paths: 50, Seed: 42},
		Schedules: []ScheduleRequest{
			{Name: "daily", Stride: 1},
			{Name: "weekly", Stride: 5},
		},
	}
}

func postExperiment(t *testing.T, router *gin.Engine, req ExperimentRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/experiments", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestRunExperimentEndpoint(t *testing.T) {
	router := testRouter()
	w := postExperiment(t, router, validRequest())
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp ExperimentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Summaries) != 2 || resp.Summaries[0].Name != "daily" {
		t.Fatalf("unexpected summaries: %+v", resp.Summaries)
	}
	if resp.Summaries[0].Errors != nil {
		t.Fatal("error vectors included without include_errors")
	}
	if resp.InitialPrice <= 0 {
		t.Fatalf("missing pricing metadata: %+v", resp)
	}
}

func TestRunExperimentIncludeErrors(t *testing.T) {
	router := testRouter()
	req := validRequest()
	req.IncludeErrors = true
	w := postExperiment(t, router, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp ExperimentResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Summaries[0].Errors) != 50 {
		t.Fatalf("expected 50 raw errors, got %d", len(resp.Summaries[0].Errors))
	}
}

func TestRunExperimentRejectsBadInput(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name   string
		mutate func(*ExperimentRequest)
	}{
		{"no schedules", func(r *ExperimentRequest) { r.Schedules = nil }},
		{"zero stride", func(r *ExperimentRequest) { r.Schedules[0].Stride = 0 }},
		{"negative vol", func(r *ExperimentRequest) { r.Market.Vol = -0.1 }},
		{"zero paths", func(r *ExperimentRequest) { r.Simulation.Paths = 0 }},
		{"zero maturity", func(r *ExperimentRequest) { r.Market.Maturity = 0 }},
	}
	for _, test := range tests {
		req := validRequest()
		test.mutate(&req)
		w := postExperiment(t, router, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", test.name, w.Code, w.Body.String())
		}
	}

	// malformed body
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/experiments", bytes.NewReader([]byte("{")))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", w.Code)
	}
}

func TestDefaultsEndpoint(t *testing.T) {
	router := testRouter()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/v1/defaults", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body ExperimentRequest
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid defaults JSON: %v", err)
	}
	if body.Market.Spot != 100 || body.Simulation.Steps != 252 || len(body.Schedules) != 3 {
		t.Fatalf("unexpected defaults: %+v", body)
	}
}

// Panics reaching the recovery middleware must come back as structured
// 500 responses, with string and error payloads both surfacing their
// message instead of the generic fallback.
func TestRecoveryMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery())
	router.GET("/panic-error", func(c *gin.Context) {
		panic(errors.New("batch exhausted"))
	})
	router.GET("/panic-string", func(c *gin.Context) {
		panic("scheduler wedged")
	})
	router.GET("/panic-other", func(c *gin.Context) {
		panic(42)
	})

	cases := []struct {
		path    string
		message string
	}{
		{"/panic-error", "batch exhausted"},
		{"/panic-string", "scheduler wedged"},
		{"/panic-other", "An unexpected error occurred"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		router.ServeHTTP(w, r)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("%s: expected 500, got %d", tc.path, w.Code)
		}
		var resp struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid error JSON: %v", tc.path, err)
		}
		if resp.Error.Code != "INTERNAL_ERROR" || resp.Error.Message != tc.message {
			t.Fatalf("%s: unexpected error body %+v", tc.path, resp.Error)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	router := testRouter()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodOptions, "/api/v1/experiments", nil)
	router.ServeHTTP(w, r)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS headers")
	}
}
