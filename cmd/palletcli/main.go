// palletcli is the interactive companion to the engine: load a dataset
// pair, pick an algorithm from a menu, inspect the packing. Every solve
// is appended to the same results CSV the service writes.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/loadbay/pallet-engine/internal/bench"
	"github.com/loadbay/pallet-engine/internal/dataset"
	"github.com/loadbay/pallet-engine/internal/extsolver"
	"github.com/loadbay/pallet-engine/internal/results"
	"github.com/loadbay/pallet-engine/internal/solver"
	"github.com/loadbay/pallet-engine/pkg/models"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <truck.csv> <pallets.csv>\n", os.Args[0])
		os.Exit(2)
	}

	ds, err := dataset.Load(os.Args[1], os.Args[2])
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}

	logger := results.NewLogger(getEnvOrDefault("RESULTS_PATH", "results.csv"))

	var ext extsolver.Solver
	if bin := os.Getenv("EXT_SOLVER_BIN"); bin != "" {
		ext = extsolver.NewCommandSolver(bin)
	}

	runner := bench.NewRunner(logger, nil, nil, nil)

	fmt.Printf("Loaded %s: capacity %d, %d pallets\n", ds.Name, ds.Capacity, len(ds.Pallets))

	in := bufio.NewScanner(os.Stdin)
	for {
		printMenu(ext != nil)
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		choice := strings.TrimSpace(in.Text())

		switch choice {
		case "0", "q":
			return
		case "1", "2", "3", "4", "5":
			name := solver.Names()[int(choice[0]-'1')]
			runAlgorithm(runner, name, ds)
		case "6":
			if ext == nil {
				fmt.Println("No external solver configured (set EXT_SOLVER_BIN)")
				continue
			}
			out, err := ext.Run(context.Background(), os.Args[1], os.Args[2])
			if err != nil {
				fmt.Printf("External solver failed: %v\n", err)
				continue
			}
			fmt.Println(strings.TrimSpace(out))
		default:
			// Anything unrecognized just falls through to a fresh prompt.
			fmt.Printf("Unrecognized choice %q\n", choice)
		}
	}
}

func printMenu(hasExt bool) {
	fmt.Println()
	fmt.Println("Select an algorithm:")
	for i, name := range solver.Names() {
		kind := "exact"
		if !solver.IsExact(name) {
			kind = "heuristic"
		}
		if solver.IsExponential(name) {
			kind += ", exponential"
		}
		fmt.Printf("  %d) %s (%s)\n", i+1, name, kind)
	}
	if hasExt {
		fmt.Println("  6) external solver")
	}
	fmt.Println("  0) quit")
}

func runAlgorithm(runner *bench.Runner, name string, ds models.Dataset) {
	// Unlike the HTTP boundary, the CLI trusts the operator: warn and run.
	if solver.IsExponential(name) && len(ds.Pallets) > 24 {
		fmt.Printf("Warning: %d pallets on %s may take a very long time\n", len(ds.Pallets), name)
	}

	rec := runner.RunOne(context.Background(), name, ds)
	sol := rec.Solution

	fmt.Printf("\n%s on %s (%.3f ms)\n", name, ds.Name, rec.ElapsedMS)
	fmt.Printf("  pallets:  %v\n", sol.SelectedIDs)
	fmt.Printf("  weight:   %d / %d\n", sol.TotalWeight, ds.Capacity)
	fmt.Printf("  profit:   %d\n", sol.TotalProfit)
}

func getEnvOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
