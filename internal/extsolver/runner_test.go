package extsolver

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun_SuccessCapturesOutput(t *testing.T) {
	s := NewCommandSolver("sh", "-c", "echo solved; true")
	// The file paths become trailing positional args the stub ignores.
	out, err := s.Run(context.Background(), "TP.csv", "P.csv")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "solved") {
		t.Errorf("Expected captured stdout, got %q", out)
	}
}

func TestRun_NonZeroExitIsAnError(t *testing.T) {
	s := NewCommandSolver("sh", "-c", "echo infeasible >&2; exit 3")
	out, err := s.Run(context.Background(), "TP.csv", "P.csv")
	if err == nil {
		t.Fatal("Expected an error for exit code 3")
	}
	if !strings.Contains(out, "infeasible") {
		t.Errorf("Expected stderr in the captured output, got %q", out)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	s := NewCommandSolver("/nonexistent/solver-binary")
	if _, err := s.Run(context.Background(), "TP.csv", "P.csv"); err == nil {
		t.Error("Expected an error for a missing binary")
	}
}

func TestRun_UnconfiguredBinary(t *testing.T) {
	s := &CommandSolver{}
	if _, err := s.Run(context.Background(), "TP.csv", "P.csv"); err == nil {
		t.Error("Expected an error when no binary is configured")
	}
}

func TestRun_Timeout(t *testing.T) {
	s := NewCommandSolver("sh", "-c", "sleep 5")
	s.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := s.Run(context.Background(), "TP.csv", "P.csv")
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("Timeout did not interrupt the process promptly")
	}
}

func TestRun_TimeoutWithChildHoldingPipe(t *testing.T) {
	// A MIP wrapper script typically launches the real solver as its own
	// child. Killing the wrapper leaves that child alive with the output
	// pipe open; Run must still return shortly after the deadline instead
	// of waiting for the grandchild to exit.
	s := NewCommandSolver("sh", "-c", "sleep 5 & wait")
	s.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err := s.Run(context.Background(), "TP.csv", "P.csv")
	if err == nil {
		t.Fatal("Expected a timeout error")
	}
	if time.Since(start) > 3*time.Second {
		t.Error("Run blocked on the orphaned child instead of returning after the timeout")
	}
}
