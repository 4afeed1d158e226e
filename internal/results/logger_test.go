package results

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/loadbay/pallet-engine/pkg/models"
)

func record(algo, dataset string, profit int) models.RunRecord {
	return models.RunRecord{
		Algorithm: algo,
		Dataset:   dataset,
		Pallets:   3,
		Capacity:  50,
		Solution: models.Solution{
			SelectedIDs: []int{2, 3},
			TotalWeight: 50,
			TotalProfit: profit,
		},
		ElapsedMS: 1.25,
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Cannot open results file: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Cannot parse results file: %v", err)
	}
	return rows
}

func TestAppend_WritesHeaderExactlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	l := NewLogger(path)

	if err := l.Append(record("dp-table", "P_01", 220)); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if err := l.Append(record("greedy", "P_01", 160)); err != nil {
		t.Fatalf("Second append failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "Algorithm" || rows[0][6] != "Time(ms)" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "dp-table" || rows[2][0] != "greedy" {
		t.Errorf("Rows out of order: %v / %v", rows[1], rows[2])
	}
}

func TestAppend_RowContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	l := NewLogger(path)

	if err := l.Append(record("exhaustive", "P_02", 220)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	rows := readRows(t, path)
	row := rows[1]
	want := []string{"exhaustive", "P_02", "3", "50", "220", "50", "1.250"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("Column %d: expected %q, got %q", i, want[i], row[i])
		}
	}
}

func TestAppend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := NewLogger(path).Append(record("dp-rolling", "P_03", 100)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	// A fresh Logger on the same path must not rewrite the header.
	if err := NewLogger(path).Append(record("dp-rolling", "P_03", 100)); err != nil {
		t.Fatalf("Append after reopen failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
}
