package watch

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
}

func TestDiscover_PairsCompleteFilesOnly(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "P_01.csv")
	touch(t, dir, "TP_01.csv")
	touch(t, dir, "P_02.csv") // orphan, no truck file yet
	touch(t, dir, "TP_03.csv")
	touch(t, dir, "notes.txt")

	pairs := Discover(dir)

	if len(pairs) != 1 {
		t.Fatalf("Expected exactly the complete pair, got %d: %+v", len(pairs), pairs)
	}
	if filepath.Base(pairs[0].PalletPath) != "P_01.csv" || filepath.Base(pairs[0].TruckPath) != "TP_01.csv" {
		t.Errorf("Wrong pair: %+v", pairs[0])
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	if pairs := Discover(filepath.Join(t.TempDir(), "nope")); pairs != nil {
		t.Errorf("Expected no pairs for a missing directory, got %+v", pairs)
	}
}
