// Package bench runs the full algorithm suite over a set of dataset file
// pairs, timing every solve, logging rows to the results CSV, persisting
// to the database when one is configured, and tracking how far the greedy
// heuristic drifts from the proven optimum.
package bench

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/loadbay/pallet-engine/internal/dataset"
	"github.com/loadbay/pallet-engine/internal/db"
	"github.com/loadbay/pallet-engine/internal/extsolver"
	"github.com/loadbay/pallet-engine/internal/metrics"
	"github.com/loadbay/pallet-engine/internal/results"
	"github.com/loadbay/pallet-engine/internal/solver"
	"github.com/loadbay/pallet-engine/pkg/models"
)

// Exponential algorithms are skipped above this item count during suite
// runs. 2^24 subsets is already minutes of work on a single core.
const maxExponentialItems = 24

// DatasetPair names the two input files of one benchmark instance.
type DatasetPair struct {
	TruckPath  string `json:"truckPath"`
	PalletPath string `json:"palletPath"`
}

// RunAlert is emitted after every completed solve for real-time streaming.
type RunAlert struct {
	RunID     string  `json:"runId"`
	Algorithm string  `json:"algorithm"`
	Dataset   string  `json:"dataset"`
	Pallets   int     `json:"pallets"`
	Capacity  int     `json:"capacity"`
	Profit    int     `json:"profit"`
	Weight    int     `json:"weight"`
	ElapsedMS float64 `json:"elapsedMs"`
	Timestamp string  `json:"timestamp"`
}

// Progress represents the runner's current state for the API
type Progress struct {
	IsRunning      bool   `json:"isRunning"`
	Completed      int64  `json:"completed"`
	TotalDatasets  int64  `json:"totalDatasets"`
	CurrentDataset string `json:"currentDataset"`
}

// Runner drives suite executions. One suite at a time; a second request
// while one is in flight is ignored.
type Runner struct {
	logger    *results.Logger
	store     *db.PostgresStore
	ext       extsolver.Solver
	alertFunc func(alert RunAlert) // Optional broadcast callback

	// Progress tracking (atomic for safe concurrent reads)
	completed atomic.Int64
	total     atomic.Int64
	isRunning atomic.Bool

	mu      sync.Mutex
	current string
	samples []metrics.Sample
}

func NewRunner(logger *results.Logger, store *db.PostgresStore, ext extsolver.Solver, alertFunc func(RunAlert)) *Runner {
	return &Runner{
		logger:    logger,
		store:     store,
		ext:       ext,
		alertFunc: alertFunc,
	}
}

// GetProgress returns the current suite progress (thread-safe)
func (r *Runner) GetProgress() Progress {
	r.mu.Lock()
	current := r.current
	r.mu.Unlock()
	return Progress{
		IsRunning:      r.isRunning.Load(),
		Completed:      r.completed.Load(),
		TotalDatasets:  r.total.Load(),
		CurrentDataset: current,
	}
}

// Summary rolls up the greedy accuracy samples collected so far.
func (r *Runner) Summary() metrics.Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return metrics.Summarize(r.samples)
}

// RunSuite benchmarks the given dataset pairs asynchronously.
func (r *Runner) RunSuite(ctx context.Context, pairs []DatasetPair) {
	if !r.isRunning.CompareAndSwap(false, true) {
		log.Println("[Bench] Suite already in progress, ignoring duplicate request")
		return
	}

	r.completed.Store(0)
	r.total.Store(int64(len(pairs)))

	go func() {
		defer r.isRunning.Store(false)
		r.runSuite(ctx, pairs)
	}()
}

func (r *Runner) runSuite(ctx context.Context, pairs []DatasetPair) {
	log.Printf("[Bench] Starting suite over %d datasets", len(pairs))

	for _, pair := range pairs {
		select {
		case <-ctx.Done():
			log.Printf("[Bench] Suite cancelled after %d datasets", r.completed.Load())
			return
		default:
		}

		r.benchPair(ctx, pair)
		r.completed.Add(1)
	}

	s := r.Summary()
	log.Printf("[Bench] Suite complete: %d datasets | greedy accuracy mean %.2f%% min %.2f%% (worst: %s)",
		r.completed.Load(), s.Mean, s.Min, s.WorstDataset)
}

func (r *Runner) benchPair(ctx context.Context, pair DatasetPair) {
	ds, err := dataset.Load(pair.TruckPath, pair.PalletPath)
	if err != nil {
		log.Printf("[Bench] Skipping %s: %v", pair.PalletPath, err)
		return
	}

	r.mu.Lock()
	r.current = ds.Name
	r.mu.Unlock()

	var optimal, greedy *models.Solution
	for _, name := range solver.Names() {
		if solver.IsExponential(name) && len(ds.Pallets) > maxExponentialItems {
			log.Printf("[Bench] %s: %d pallets is too large for %s, refusing to run",
				ds.Name, len(ds.Pallets), name)
			continue
		}

		rec := r.RunOne(ctx, name, ds)
		if solver.IsExact(name) && optimal == nil {
			sol := rec.Solution
			optimal = &sol
		}
		if name == solver.AlgoGreedy {
			sol := rec.Solution
			greedy = &sol
		}
	}

	if optimal != nil && greedy != nil {
		r.recordDivergence(ctx, ds.Name, *optimal, *greedy)
	}

	if r.ext != nil {
		if _, err := r.ext.Run(ctx, pair.TruckPath, pair.PalletPath); err != nil {
			log.Printf("[Bench] External solver on %s: %v", ds.Name, err)
		}
	}
}

// RunOne times a single algorithm on a dataset and persists the outcome.
// It is also the entry point for one-off solves from the API and the CLI.
func (r *Runner) RunOne(ctx context.Context, algorithm string, ds models.Dataset) models.RunRecord {
	fn, ok := solver.Lookup(algorithm)
	if !ok {
		log.Printf("[Bench] Unknown algorithm %q requested for %s", algorithm, ds.Name)
		return models.RunRecord{}
	}

	start := time.Now()
	sol := fn(ds.Pallets, ds.Capacity)
	elapsed := time.Since(start)

	rec := models.RunRecord{
		RunID:     uuid.New().String(),
		Algorithm: algorithm,
		Dataset:   ds.Name,
		Pallets:   len(ds.Pallets),
		Capacity:  ds.Capacity,
		Solution:  sol,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000.0,
		CreatedAt: time.Now(),
	}

	if r.logger != nil {
		if err := r.logger.Append(rec); err != nil {
			log.Printf("[Bench] Results log error for %s/%s: %v", ds.Name, algorithm, err)
		}
	}
	if r.store != nil {
		if err := r.store.SaveRun(ctx, rec); err != nil {
			log.Printf("[Bench] DB persist error for %s/%s: %v", ds.Name, algorithm, err)
		}
	}
	if r.alertFunc != nil {
		r.alertFunc(RunAlert{
			RunID:     rec.RunID,
			Algorithm: rec.Algorithm,
			Dataset:   rec.Dataset,
			Pallets:   rec.Pallets,
			Capacity:  rec.Capacity,
			Profit:    sol.TotalProfit,
			Weight:    sol.TotalWeight,
			ElapsedMS: rec.ElapsedMS,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
	return rec
}

func (r *Runner) recordDivergence(ctx context.Context, name string, optimal, greedy models.Solution) {
	acc := metrics.Accuracy(greedy.TotalProfit, optimal.TotalProfit)

	r.mu.Lock()
	r.samples = append(r.samples, metrics.Sample{Dataset: name, Accuracy: acc})
	r.mu.Unlock()

	if greedy.TotalProfit < optimal.TotalProfit {
		log.Printf("[Bench] DIVERGENCE on %s: optimal=%d greedy=%d accuracy=%.2f%%",
			name, optimal.TotalProfit, greedy.TotalProfit, acc)
	}

	if r.store != nil {
		d := models.Divergence{
			Dataset:       name,
			OptimalProfit: optimal.TotalProfit,
			GreedyProfit:  greedy.TotalProfit,
			Accuracy:      acc,
		}
		if err := r.store.SaveDivergence(ctx, d); err != nil {
			log.Printf("[Bench] Divergence persist error for %s: %v", name, err)
		}
	}
}
