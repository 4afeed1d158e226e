// Package results appends solve outcomes to a CSV log shared by the CLI,
// the benchmark runner and the HTTP API. The file format matches what the
// downstream analysis scripts expect, header included.
package results

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/loadbay/pallet-engine/pkg/models"
)

var header = []string{"Algorithm", "Dataset", "Pallets", "Capacity", "Profit", "Weight", "Time(ms)"}

// Logger appends rows to a single results file. Safe for concurrent use;
// the file is opened per append so external truncation between runs is
// picked up without restarting.
type Logger struct {
	mu   sync.Mutex
	path string
}

func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

func (l *Logger) Path() string { return l.path }

// Append writes one result row, emitting the header first iff the file is
// new or empty.
func (l *Logger) Append(rec models.RunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open results file %s: %v", l.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("cannot stat results file %s: %v", l.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("cannot write results header: %v", err)
		}
	}

	row := []string{
		rec.Algorithm,
		rec.Dataset,
		strconv.Itoa(rec.Pallets),
		strconv.Itoa(rec.Capacity),
		strconv.Itoa(rec.Solution.TotalProfit),
		strconv.Itoa(rec.Solution.TotalWeight),
		strconv.FormatFloat(rec.ElapsedMS, 'f', 3, 64),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("cannot write results row: %v", err)
	}
	w.Flush()
	return w.Error()
}
