package classifier

import (
	"encoding/json"
	"strings"

	"hrdocs/internal"
)

// notFound covers the model's "campo non trovato" answers in both genders.
var notFound = map[string]struct{}{
	"non trovato": {},
	"non trovata": {},
}

// ParseModelResponse turns the model's text answer into an extraction record.
// Anything that cannot be parsed becomes a full error record: field failures
// are data, never errors.
func ParseModelResponse(text, fileName string) internal.ExtractionRecord {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(cleaned[len("```json") : len(cleaned)-len("```")])
	} else if strings.HasPrefix(cleaned, "```") && strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(cleaned[len("```") : len(cleaned)-len("```")])
	}

	var record internal.ExtractionRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return ErrorRecord(fileName)
	}

	record.FileName = fileName
	record.FirstName = orPlaceholder(record.FirstName, internal.NoNamePlaceholder)
	record.LastName = orPlaceholder(record.LastName, internal.NoLastNamePlaceholder)
	record.Date = orPlaceholder(record.Date, internal.NoDatePlaceholder)
	record.Cluster = snapCluster(record.Cluster)
	if isAbsent(record.Country) {
		record.Country = ""
	}
	return record
}

// ErrorRecord is the per-document fallback when classification fails
// outright: every field carries the error token and the record flows through
// the ordinary unmatched path.
func ErrorRecord(fileName string) internal.ExtractionRecord {
	return internal.ExtractionRecord{
		FileName:  fileName,
		FirstName: internal.ErrorToken,
		LastName:  internal.ErrorToken,
		Date:      internal.ErrorToken,
		Cluster:   internal.ErrorToken,
		Country:   internal.ErrorToken,
	}
}

func orPlaceholder(value, placeholder string) string {
	if isAbsent(value) {
		return placeholder
	}
	return strings.TrimSpace(value)
}

func isAbsent(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}
	_, ok := notFound[v]
	return ok
}

// snapCluster keeps the cluster label inside the closed set the prompt
// allows. Unknown labels collapse to NoCluster, error tokens stay.
func snapCluster(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return internal.NoCluster
	}
	if strings.EqualFold(v, "errore") || strings.EqualFold(v, "error") {
		return internal.ErrorToken
	}
	for _, cluster := range internal.Clusters {
		if strings.EqualFold(v, cluster) {
			return cluster
		}
	}
	return internal.NoCluster
}
