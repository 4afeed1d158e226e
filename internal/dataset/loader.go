// Package dataset loads the two tabular inputs a pallet-packing run needs:
// a truck file declaring capacity and pallet count, and a pallet file
// enumerating id/weight/profit rows. Validation here is the caller-side
// contract the solver relies on: rows must be numeric and non-negative,
// but id uniqueness is the data supplier's problem.
package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/loadbay/pallet-engine/pkg/models"
)

// Truck file header columns.
const (
	colCapacity = "Capacity"
	colPallets  = "Pallets"
)

// Pallet file header columns.
const (
	colPalletID = "Pallet"
	colWeight   = "Weight"
	colProfit   = "Profit"
)

// LoadTruck reads the truck file: a header row then a single data row with
// the capacity and the declared pallet count.
func LoadTruck(path string) (capacity, declared int, err error) {
	records, err := readCSV(path)
	if err != nil {
		return 0, 0, err
	}
	if len(records) < 2 {
		return 0, 0, fmt.Errorf("truck file %s has no data row", path)
	}

	cols, err := headerIndex(records[0], colCapacity, colPallets)
	if err != nil {
		return 0, 0, fmt.Errorf("truck file %s: %v", path, err)
	}

	capacity, err = nonNegativeField(records[1], cols[colCapacity], colCapacity)
	if err != nil {
		return 0, 0, fmt.Errorf("truck file %s: %v", path, err)
	}
	declared, err = nonNegativeField(records[1], cols[colPallets], colPallets)
	if err != nil {
		return 0, 0, fmt.Errorf("truck file %s: %v", path, err)
	}
	return capacity, declared, nil
}

// LoadPallets reads the pallet file: a header row then one row per pallet.
func LoadPallets(path string) ([]models.Pallet, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("pallet file %s is empty", path)
	}

	cols, err := headerIndex(records[0], colPalletID, colWeight, colProfit)
	if err != nil {
		return nil, fmt.Errorf("pallet file %s: %v", path, err)
	}

	pallets := make([]models.Pallet, 0, len(records)-1)
	for i, row := range records[1:] {
		id, err := positiveField(row, cols[colPalletID], colPalletID)
		if err != nil {
			return nil, fmt.Errorf("pallet file %s row %d: %v", path, i+2, err)
		}
		weight, err := nonNegativeField(row, cols[colWeight], colWeight)
		if err != nil {
			return nil, fmt.Errorf("pallet file %s row %d: %v", path, i+2, err)
		}
		profit, err := nonNegativeField(row, cols[colProfit], colProfit)
		if err != nil {
			return nil, fmt.Errorf("pallet file %s row %d: %v", path, i+2, err)
		}
		pallets = append(pallets, models.Pallet{ID: id, Weight: weight, Profit: profit})
	}
	return pallets, nil
}

// Load combines both files into a Dataset named after the pallet file.
// A mismatch between the declared and actual pallet count is logged, not
// fatal — the pallet file is authoritative.
func Load(truckPath, palletPath string) (models.Dataset, error) {
	capacity, declared, err := LoadTruck(truckPath)
	if err != nil {
		return models.Dataset{}, err
	}
	pallets, err := LoadPallets(palletPath)
	if err != nil {
		return models.Dataset{}, err
	}

	if declared != len(pallets) {
		log.Printf("[Dataset] Truck file declares %d pallets but %s has %d entries",
			declared, palletPath, len(pallets))
	}

	name := strings.TrimSuffix(filepath.Base(palletPath), filepath.Ext(palletPath))
	return models.Dataset{Name: name, Capacity: capacity, Pallets: pallets}, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %v", path, err)
	}
	return records, nil
}

// headerIndex maps the wanted column names to their positions, case
// sensitive, matching the CSV layouts the collector scripts emit.
func headerIndex(header []string, wanted ...string) (map[string]int, error) {
	cols := make(map[string]int, len(wanted))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range wanted {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", name, header)
		}
	}
	return cols, nil
}

// positiveField is nonNegativeField plus the id contract: pallet ids
// start at 1, so 0 marks a malformed row rather than a real pallet.
func positiveField(row []string, idx int, name string) (int, error) {
	v, err := nonNegativeField(row, idx, name)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("column %q: must be positive, got %d", name, v)
	}
	return v, nil
}

func nonNegativeField(row []string, idx int, name string) (int, error) {
	if idx >= len(row) {
		return 0, fmt.Errorf("row too short for column %q", name)
	}
	v, err := strconv.Atoi(strings.TrimSpace(row[idx]))
	if err != nil {
		return 0, fmt.Errorf("column %q: %v", name, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("column %q: negative value %d", name, v)
	}
	return v, nil
}
