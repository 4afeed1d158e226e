package api

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/loadbay/pallet-engine/internal/bench"
	"github.com/loadbay/pallet-engine/internal/db"
	"github.com/loadbay/pallet-engine/internal/solver"
	"github.com/loadbay/pallet-engine/internal/watch"
	"github.com/loadbay/pallet-engine/pkg/models"
)

// Exponential algorithms are rejected over HTTP above this item count.
// Larger instances must go through the polynomial algorithms instead.
const maxExponentialItems = 24

// The DP algorithms allocate tables proportional to the capacity, so the
// boundary bounds it too. Above the cap only greedy remains.
const maxDPCapacity = 1 << 20

type APIHandler struct {
	dbStore    *db.PostgresStore
	runner     *bench.Runner
	wsHub      *Hub
	datasetDir string
}

func SetupRouter(dbStore *db.PostgresStore, runner *bench.Runner, wsHub *Hub, datasetDir string) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://loadbay.io,https://www.loadbay.io
	// Development: ALLOWED_ORIGINS=http://localhost:3000 (or leave empty for *)
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			// Check if the request origin is in the allowed list
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{dbStore: dbStore, runner: runner, wsHub: wsHub, datasetDir: datasetDir}
	limiter := NewRateLimiter(60, 10)

	api := r.Group("/api/v1")
	{
		api.GET("/algorithms", handler.handleListAlgorithms)
		api.GET("/health", handler.handleHealth)
		api.GET("/stream", wsHub.Subscribe)

		// Solves are auth-protected and rate-limited; exponential
		// algorithms drain the bucket faster than polynomial ones.
		solve := api.Group("/", AuthMiddleware(), limiter.Middleware())
		{
			solve.POST("/solve", handler.handleSolve)
			solve.POST("/bench", handler.handleStartBench)
		}

		api.GET("/bench/progress", handler.handleBenchProgress)
		api.GET("/bench/summary", handler.handleBenchSummary)
		api.GET("/runs", handler.handleGetRuns)
		api.GET("/divergences", handler.handleGetDivergences)
	}

	// Serve Static Dashboard
	r.Static("/dashboard", "./public")

	return r
}

// handleSolve runs one algorithm on an inline instance.
// POST /api/v1/solve { "algorithm": "dp-table", "capacity": 50, "pallets": [...] }
func (h *APIHandler) handleSolve(c *gin.Context) {
	var req struct {
		Algorithm string          `json:"algorithm"`
		Dataset   string          `json:"dataset"`
		Capacity  int             `json:"capacity"`
		Pallets   []models.Pallet `json:"pallets"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Expected: {algorithm, capacity, pallets}"})
		return
	}

	if _, ok := solver.Lookup(req.Algorithm); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Unknown algorithm: " + req.Algorithm,
			"algorithms": solver.Names(),
		})
		return
	}
	if req.Capacity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity must be non-negative"})
		return
	}
	for _, p := range req.Pallets {
		if p.Weight < 0 || p.Profit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Pallet weights and profits must be non-negative"})
			return
		}
	}
	if solver.IsExponential(req.Algorithm) && len(req.Pallets) > maxExponentialItems {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      "Instance too large for " + req.Algorithm + ", refusing to run",
			"maxPallets": maxExponentialItems,
			"hint":       "Use dp-table, dp-rolling or greedy for larger instances",
		})
		return
	}
	if (req.Algorithm == solver.AlgoDPTable || req.Algorithm == solver.AlgoDPRolling) && req.Capacity > maxDPCapacity {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "Capacity too large for " + req.Algorithm + ", refusing to run",
			"maxCapacity": maxDPCapacity,
			"hint":        "Use greedy for very large capacities",
		})
		return
	}

	name := req.Dataset
	if name == "" {
		name = "adhoc"
	}
	ds := models.Dataset{Name: name, Capacity: req.Capacity, Pallets: req.Pallets}
	rec := h.runner.RunOne(c.Request.Context(), req.Algorithm, ds)

	c.JSON(http.StatusOK, rec)
}

// handleListAlgorithms describes the registered algorithms for clients.
func (h *APIHandler) handleListAlgorithms(c *gin.Context) {
	type algoInfo struct {
		Name        string `json:"name"`
		Exact       bool   `json:"exact"`
		Exponential bool   `json:"exponential"`
	}
	infos := make([]algoInfo, 0, len(solver.Names()))
	for _, name := range solver.Names() {
		infos = append(infos, algoInfo{
			Name:        name,
			Exact:       solver.IsExact(name),
			Exponential: solver.IsExponential(name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"algorithms": infos})
}

// handleHealth returns engine status and capabilities for service discovery
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "operational",
		"engine": "LoadBay Pallet Engine v1.2",
		"capabilities": gin.H{
			"algorithms":    solver.Names(),
			"bench_suite":   true,
			"dataset_watch": h.datasetDir != "",
			"divergences":   h.dbStore != nil,
		},
		"dbConnected": h.dbStore != nil,
		"wsClients":   h.wsHub.ClientCount(),
	})
}

// handleGetRuns returns past solves, newest first.
// GET /api/v1/runs?algorithm=greedy&page=1&limit=50
func (h *APIHandler) handleGetRuns(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	algorithm := c.Query("algorithm")

	if algorithm != "" {
		if _, ok := solver.Lookup(algorithm); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown algorithm: " + algorithm})
			return
		}
	}

	runs, totalCount, err := h.dbStore.GetRuns(c.Request.Context(), algorithm, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch runs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       runs,
		"totalCount": totalCount,
		"page":       page,
		"limit":      limit,
	})
}

// handleGetDivergences lists datasets where the greedy heuristic fell
// short of the optimum, worst accuracy first.
func (h *APIHandler) handleGetDivergences(c *gin.Context) {
	if h.dbStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database not connected"})
		return
	}

	divs, err := h.dbStore.GetDivergences(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch divergences", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": divs, "count": len(divs)})
}

// handleStartBench launches a benchmark suite in the background.
// POST /api/v1/bench { "pairs": [{truckPath, palletPath}] }
// An empty body benches every pair found in the configured dataset dir.
func (h *APIHandler) handleStartBench(c *gin.Context) {
	var req struct {
		Pairs []bench.DatasetPair `json:"pairs"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body. Expected: {pairs: [{truckPath, palletPath}]}"})
			return
		}
	}

	pairs := req.Pairs
	if len(pairs) == 0 {
		if h.datasetDir == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No pairs given and no dataset directory configured"})
			return
		}
		pairs = watch.Discover(h.datasetDir)
		if len(pairs) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "No dataset pairs found in " + h.datasetDir})
			return
		}
	}

	if h.runner.GetProgress().IsRunning {
		c.JSON(http.StatusConflict, gin.H{"error": "A benchmark suite is already running"})
		return
	}

	// The suite outlives the request.
	h.runner.RunSuite(context.Background(), pairs)

	c.JSON(http.StatusOK, gin.H{
		"status":        "bench_started",
		"totalDatasets": len(pairs),
	})
}

// handleBenchProgress returns the current progress of the suite runner.
func (h *APIHandler) handleBenchProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.GetProgress())
}

// handleBenchSummary returns the rolled-up greedy accuracy figures.
func (h *APIHandler) handleBenchSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.runner.Summary())
}
