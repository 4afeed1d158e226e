package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/loadbay/pallet-engine/internal/bench"
	"github.com/loadbay/pallet-engine/pkg/models"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	runner := bench.NewRunner(nil, nil, nil, nil)
	return SetupRouter(nil, runner, NewHub(), "")
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSolveEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve",
		`{"algorithm":"dp-table","capacity":50,"pallets":[
			{"id":1,"weight":10,"profit":60},
			{"id":2,"weight":20,"profit":100},
			{"id":3,"weight":30,"profit":120}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var rec models.RunRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if rec.Solution.TotalProfit != 220 {
		t.Errorf("Expected profit 220, got %d", rec.Solution.TotalProfit)
	}
	if rec.RunID == "" {
		t.Error("Expected a run id in the response")
	}
}

func TestSolveEndpoint_UnknownAlgorithm(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve",
		`{"algorithm":"simulated-annealing","capacity":10,"pallets":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown algorithm, got %d", w.Code)
	}
}

func TestSolveEndpoint_NegativeWeight(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve",
		`{"algorithm":"greedy","capacity":10,"pallets":[{"id":1,"weight":-2,"profit":5}]}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a negative weight, got %d", w.Code)
	}
}

func TestSolveEndpoint_RefusesLargeExponentialInstance(t *testing.T) {
	r := testRouter(t)

	var sb strings.Builder
	sb.WriteString(`{"algorithm":"exhaustive","capacity":100,"pallets":[`)
	for i := 0; i < 30; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"id":` + strconv.Itoa(i+1) + `,"weight":1,"profit":1}`)
	}
	sb.WriteString(`]}`)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", sb.String())

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for 30 pallets on exhaustive, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSolveEndpoint_LargeInstanceAllowedForDP(t *testing.T) {
	r := testRouter(t)

	var sb strings.Builder
	sb.WriteString(`{"algorithm":"dp-rolling","capacity":15,"pallets":[`)
	for i := 0; i < 30; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"id":` + strconv.Itoa(i+1) + `,"weight":1,"profit":1}`)
	}
	sb.WriteString(`]}`)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve", sb.String())

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for 30 pallets on dp-rolling, got %d: %s", w.Code, w.Body.String())
	}

	var rec models.RunRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if rec.Solution.TotalProfit != 15 {
		t.Errorf("Expected the capacity-bound profit 15, got %d", rec.Solution.TotalProfit)
	}
}

func TestSolveEndpoint_RefusesHugeCapacityForDP(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve",
		`{"algorithm":"dp-table","capacity":1000000000,"pallets":[{"id":1,"weight":10,"profit":60}]}`)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for a huge capacity on dp-table, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSolveEndpoint_HugeCapacityAllowedForGreedy(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/solve",
		`{"algorithm":"greedy","capacity":1000000000,"pallets":[{"id":1,"weight":10,"profit":60}]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a huge capacity on greedy, got %d: %s", w.Code, w.Body.String())
	}

	var rec models.RunRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if rec.Solution.TotalProfit != 60 {
		t.Errorf("Expected profit 60, got %d", rec.Solution.TotalProfit)
	}
}

func TestAlgorithmsEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/algorithms", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Algorithms []struct {
			Name        string `json:"name"`
			Exact       bool   `json:"exact"`
			Exponential bool   `json:"exponential"`
		} `json:"algorithms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid response JSON: %v", err)
	}
	if len(resp.Algorithms) != 5 {
		t.Fatalf("Expected 5 algorithms, got %d", len(resp.Algorithms))
	}
	for _, a := range resp.Algorithms {
		if a.Name == "greedy" && a.Exact {
			t.Error("greedy must not be marked exact")
		}
		if a.Name == "exhaustive" && !a.Exponential {
			t.Error("exhaustive must be marked exponential")
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"operational"`) {
		t.Errorf("Unexpected health payload: %s", w.Body.String())
	}
}

func TestRunsEndpoint_NoDatabase(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/runs", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a database, got %d", w.Code)
	}
}

func TestBenchEndpoint_NoPairsNoDir(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/bench", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 with no pairs and no dataset dir, got %d: %s", w.Code, w.Body.String())
	}
}
