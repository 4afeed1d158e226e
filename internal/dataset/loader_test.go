package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write fixture %s: %v", name, err)
	}
	return path
}

func TestLoadTruck(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "TP_01.csv", "Capacity,Pallets\n100,10\n")

	capacity, declared, err := LoadTruck(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if capacity != 100 || declared != 10 {
		t.Errorf("Expected capacity=100 declared=10, got %d and %d", capacity, declared)
	}
}

func TestLoadTruck_MissingDataRow(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "TP_empty.csv", "Capacity,Pallets\n")

	if _, _, err := LoadTruck(path); err == nil {
		t.Error("Expected an error for a truck file with no data row")
	}
}

func TestLoadPallets(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "P_01.csv",
		"Pallet,Weight,Profit\n1,27,24\n2,13,17\n3,45,50\n")

	pallets, err := LoadPallets(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pallets) != 3 {
		t.Fatalf("Expected 3 pallets, got %d", len(pallets))
	}
	if pallets[1].ID != 2 || pallets[1].Weight != 13 || pallets[1].Profit != 17 {
		t.Errorf("Row 2 parsed wrong: %+v", pallets[1])
	}
}

func TestLoadPallets_RejectsNonNumeric(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "P_bad.csv", "Pallet,Weight,Profit\n1,heavy,10\n")

	if _, err := LoadPallets(path); err == nil {
		t.Error("Expected an error for a non-numeric weight")
	}
}

func TestLoadPallets_RejectsNegative(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "P_neg.csv", "Pallet,Weight,Profit\n1,-3,10\n")

	if _, err := LoadPallets(path); err == nil {
		t.Error("Expected an error for a negative weight")
	}
}

func TestLoadPallets_RejectsZeroID(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "P_zero.csv", "Pallet,Weight,Profit\n0,3,10\n")

	if _, err := LoadPallets(path); err == nil {
		t.Error("Expected an error for pallet id 0; ids start at 1")
	}
}

func TestLoadPallets_RejectsMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "P_cols.csv", "Pallet,Weight\n1,3\n")

	if _, err := LoadPallets(path); err == nil {
		t.Error("Expected an error when the Profit column is absent")
	}
}

func TestLoad_CombinesAndNames(t *testing.T) {
	dir := t.TempDir()
	truck := writeFile(t, dir, "TP_07.csv", "Capacity,Pallets\n50,2\n")
	pallet := writeFile(t, dir, "P_07.csv", "Pallet,Weight,Profit\n1,10,60\n2,20,100\n")

	ds, err := Load(truck, pallet)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ds.Name != "P_07" {
		t.Errorf("Expected dataset name P_07, got %q", ds.Name)
	}
	if ds.Capacity != 50 || len(ds.Pallets) != 2 {
		t.Errorf("Dataset loaded wrong: %+v", ds)
	}
}

func TestLoad_CountMismatchIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	truck := writeFile(t, dir, "TP_08.csv", "Capacity,Pallets\n50,5\n")
	pallet := writeFile(t, dir, "P_08.csv", "Pallet,Weight,Profit\n1,10,60\n")

	ds, err := Load(truck, pallet)
	if err != nil {
		t.Fatalf("A declared-count mismatch must only warn, got error: %v", err)
	}
	if len(ds.Pallets) != 1 {
		t.Errorf("The pallet file is authoritative; expected 1 pallet, got %d", len(ds.Pallets))
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	dir := t.TempDir()
	truck := writeFile(t, dir, "TP_09.csv", "Capacity,Pallets\n50,1\n")

	if _, err := Load(truck, filepath.Join(dir, "P_09.csv")); err == nil {
		t.Error("Expected an error when the pallet file does not exist")
	}
}
