package pipeline

import (
	"strings"

	"hrdocs/internal"
	"hrdocs/internal/util"
)

// NormalizedRecord carries an extraction record next to the canonical forms
// of its identity fields. The raw record stays untouched.
type NormalizedRecord struct {
	Raw internal.ExtractionRecord

	FirstName string
	LastName  string
	Date      string
	Country   string
	Cluster   string
}

func NormalizeRecord(record internal.ExtractionRecord) NormalizedRecord {
	return NormalizedRecord{
		Raw:       record,
		FirstName: util.NormalizeName(record.FirstName),
		LastName:  util.NormalizeName(record.LastName),
		Date:      util.NormalizeDate(record.Date),
		Country:   util.NormalizeCountry(record.Country),
		Cluster:   strings.TrimSpace(record.Cluster),
	}
}

func NormalizeRecords(records []internal.ExtractionRecord) []NormalizedRecord {
	out := make([]NormalizedRecord, 0, len(records))
	for _, record := range records {
		out = append(out, NormalizeRecord(record))
	}
	return out
}
