package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"hrdocs/internal"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elenco_personale.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, "Nome,Cognome,Person Number,Sede\nMario,Rossi,P001,Milano\nLuigi,Verdi,P002,Roma\n")

	entries, err := Load(path, "Person Number")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].FirstName != "Mario" || entries[0].PersonNumber != "P001" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].Attributes["Sede"] != "Roma" {
		t.Fatalf("extra attribute lost: %+v", entries[1])
	}
}

func TestLoadMissingPersonColumn(t *testing.T) {
	path := writeCSV(t, "Nome,Cognome,Matricola\nMario,Rossi,P001\n")

	if _, err := Load(path, "Person Number"); err == nil {
		t.Fatalf("expected error for missing person column")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv"), "Person Number"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "elenco_personale.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Nome", "Cognome", "Person Number"},
		{"Mario", "Rossi", "P001"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	entries, err := Load(path, "Person Number")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 1 || entries[0].PersonNumber != "P001" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestBuildIndexFirstOccurrenceWins(t *testing.T) {
	entries := []internal.PersonnelEntry{
		{FirstName: "Mario", LastName: "Rossi", PersonNumber: "P001"},
		{FirstName: "MARIO", LastName: "rossi", PersonNumber: "P099"},
		{FirstName: "Luigi", LastName: "Verdi", PersonNumber: "P002"},
	}

	idx := BuildIndex(entries)
	if idx.Dupes != 1 {
		t.Fatalf("got %d dupes", idx.Dupes)
	}
	entry, ok := idx.Lookup("mario", "ROSSI")
	if !ok || entry.PersonNumber != "P001" {
		t.Fatalf("unexpected lookup result: %+v ok=%v", entry, ok)
	}
}
