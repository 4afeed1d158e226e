package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/loadbay/pallet-engine/internal/api"
	"github.com/loadbay/pallet-engine/internal/bench"
	"github.com/loadbay/pallet-engine/internal/db"
	"github.com/loadbay/pallet-engine/internal/extsolver"
	"github.com/loadbay/pallet-engine/internal/results"
	"github.com/loadbay/pallet-engine/internal/watch"
)

func main() {
	log.Println("Starting LoadBay Pallet Packing Engine...")

	// ─── Environment Variables ──────────────────────────────────────────
	// DATABASE_URL is optional: without it the engine still solves and
	// logs to CSV, it just skips run history and divergence persistence.
	// Use a .env file for local development:
	// cp .env.example .env && edit .env
	// ────────────────────────────────────────────────────────────────────

	var dbConn *db.PostgresStore
	if dbUrl := os.Getenv("DATABASE_URL"); dbUrl != "" {
		conn, err := db.Connect(dbUrl)
		if err != nil {
			log.Printf("Warning: Failed to connect to PostgreSQL, continuing without run history. Error: %v", err)
		} else {
			dbConn = conn
			defer dbConn.Close()
			if err := dbConn.InitSchema(); err != nil {
				log.Printf("Warning: DB schema init failed: %v", err)
			}
		}
	} else {
		log.Println("DATABASE_URL not set, running without run history")
	}

	resultsPath := getEnvOrDefault("RESULTS_PATH", "results.csv")
	logger := results.NewLogger(resultsPath)

	// Optional external optimizer for cross-checking the suite.
	var ext extsolver.Solver
	if bin := os.Getenv("EXT_SOLVER_BIN"); bin != "" {
		cs := extsolver.NewCommandSolver(bin)
		if timeout := os.Getenv("EXT_SOLVER_TIMEOUT"); timeout != "" {
			d, err := time.ParseDuration(timeout)
			if err != nil {
				log.Fatalf("FATAL: Invalid EXT_SOLVER_TIMEOUT %q: %v", timeout, err)
			}
			cs.Timeout = d
		}
		ext = cs
		log.Printf("External solver configured: %s", bin)
	}

	// Setup WebSocket Hub
	wsHub := api.NewHub()
	go wsHub.Run()

	runner := bench.NewRunner(logger, dbConn, ext, api.BroadcastRunAlert(wsHub))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watch the dataset directory for new instances, if configured.
	datasetDir := os.Getenv("DATASET_DIR")
	if datasetDir != "" {
		poller := watch.NewPoller(datasetDir, runner)
		go poller.Run(ctx)
	}

	// Setup the Gin Router
	r := api.SetupRouter(dbConn, runner, wsHub, datasetDir)

	port := getEnvOrDefault("PORT", "5440")

	// Start the server
	log.Printf("Engine running on :%s (results: %s)\n", port, resultsPath)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// getEnvOrDefault returns the env var value or a safe default for non-secret settings.
func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
