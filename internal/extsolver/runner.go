// Package extsolver shells out to an external optimizer binary (typically
// a MIP model wrapper) that reads the same truck and pallet CSV files and
// writes its answer to its own output. The engine treats it as a black box
// for cross-checking the in-process algorithms.
package extsolver

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

// Solver runs one external solve against a truck/pallet file pair.
type Solver interface {
	Run(ctx context.Context, truckPath, palletPath string) (output string, err error)
}

// CommandSolver invokes a configured binary with the two file paths
// appended to its fixed arguments.
type CommandSolver struct {
	Bin     string
	Args    []string
	Timeout time.Duration
}

func NewCommandSolver(bin string, args ...string) *CommandSolver {
	return &CommandSolver{Bin: bin, Args: args, Timeout: 2 * time.Minute}
}

// Run executes the binary and returns its combined output. A non-zero
// exit is reported as an error with the tail of the output attached so
// the caller can log it without losing the solver's own diagnostics.
func (s *CommandSolver) Run(ctx context.Context, truckPath, palletPath string) (string, error) {
	if s.Bin == "" {
		return "", fmt.Errorf("no external solver binary configured")
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, s.Args...), truckPath, palletPath)
	cmd := exec.CommandContext(ctx, s.Bin, args...)
	// Cancellation kills only the wrapper process; its children inherit the
	// output pipe and would keep Run blocked until they exit. The wait
	// delay forces Wait to give up on the pipe shortly after the kill.
	cmd.WaitDelay = time.Second

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	out := buf.String()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return out, fmt.Errorf("external solver timed out after %s", s.Timeout)
		}
		return out, fmt.Errorf("external solver failed: %v (output: %s)", err, tail(out, 400))
	}

	log.Printf("[ExtSolver] %s finished in %s", s.Bin, elapsed.Round(time.Millisecond))
	return out, nil
}

func tail(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max:]
}
