package registry

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"hrdocs/internal"
)

const (
	columnFirstName = "Nome"
	columnLastName  = "Cognome"
)

// Load reads the personnel registry from a CSV or XLSX file. The person
// number column name is configuration, not guessed from the header; a
// registry without it fails the run up front.
func Load(path, personColumn string) ([]internal.PersonnelEntry, error) {
	if strings.TrimSpace(personColumn) == "" {
		return nil, fmt.Errorf("registry person column is not configured")
	}

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load registry %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("load registry %s: empty file", path)
	}

	header := rows[0]
	firstIdx, lastIdx, personIdx := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case columnFirstName:
			firstIdx = i
		case columnLastName:
			lastIdx = i
		case personColumn:
			personIdx = i
		}
	}
	if firstIdx < 0 || lastIdx < 0 {
		return nil, fmt.Errorf("load registry %s: missing %s/%s columns", path, columnFirstName, columnLastName)
	}
	if personIdx < 0 {
		return nil, fmt.Errorf("load registry %s: missing person column %q", path, personColumn)
	}

	out := make([]internal.PersonnelEntry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		entry := internal.PersonnelEntry{Attributes: map[string]string{}}
		for i, name := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			switch i {
			case firstIdx:
				entry.FirstName = value
			case lastIdx:
				entry.LastName = value
			case personIdx:
				entry.PersonNumber = value
			default:
				entry.Attributes[strings.TrimSpace(name)] = value
			}
		}
		if entry.FirstName == "" && entry.LastName == "" && entry.PersonNumber == "" {
			continue
		}
		out = append(out, entry)
	}

	return out, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheet)
}
