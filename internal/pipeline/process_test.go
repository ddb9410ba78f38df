package pipeline

import (
	"strings"
	"testing"

	"hrdocs/internal"
)

func runOne(t *testing.T, record internal.ExtractionRecord) (internal.DocumentRow, internal.AttachmentRow, RunResult) {
	t.Helper()
	result := Run([]internal.ExtractionRecord{record}, testRegistry)
	if len(result.Docs) != 1 || len(result.Atts) != 1 {
		t.Fatalf("expected one row per section, got %d/%d", len(result.Docs), len(result.Atts))
	}
	return result.Docs[0], result.Atts[0], result
}

func TestRunMatchedRecord(t *testing.T) {
	doc, _, result := runOne(t, internal.ExtractionRecord{
		FileName:  "doc1.pdf",
		FirstName: "Mario",
		LastName:  "Rossi",
		Date:      "2023-10-26",
		Cluster:   "Proposta di assunzione",
		Country:   "Italy",
	})

	if result.Matched != 1 {
		t.Fatalf("matched count: %d", result.Matched)
	}
	if doc.PersonNumber != "P001" {
		t.Fatalf("person number: %q", doc.PersonNumber)
	}
	if doc.DocumentType != "Proposta di assunzione" {
		t.Fatalf("document type: %q", doc.DocumentType)
	}
	if doc.DocumentCode != "P001_20231026_Proposta_di_assunzione" {
		t.Fatalf("document code: %q", doc.DocumentCode)
	}
}

func TestRunErrorNameRecord(t *testing.T) {
	doc, _, result := runOne(t, internal.ExtractionRecord{
		FileName:  "doc2.pdf",
		FirstName: "ERRORE",
		LastName:  "Bianchi",
		Date:      "2024-05-12",
	})

	if result.Discarded != 1 {
		t.Fatalf("discarded count: %d", result.Discarded)
	}
	if doc.PersonNumber != internal.NoEmployee || doc.DocumentType != internal.TypeDiscard || doc.DocumentCode != "" {
		t.Fatalf("unexpected row: %+v", doc)
	}
}

func TestRunUnknownIdentityRecord(t *testing.T) {
	doc, _, result := runOne(t, internal.ExtractionRecord{
		FileName:  "doc3.pdf",
		FirstName: "Luigi",
		LastName:  "Verdi",
		Date:      "2024-05-12",
		Cluster:   "Cessazione",
	})

	if result.Unmatched != 1 {
		t.Fatalf("unmatched count: %d", result.Unmatched)
	}
	if doc.PersonNumber != internal.NoEmployee || doc.DocumentType != internal.TypeDiscard {
		t.Fatalf("unexpected row: %+v", doc)
	}
	if doc.Country != "" || doc.DocumentName != internal.NoEmployee || doc.DocumentCode != "" {
		t.Fatalf("unexpected row: %+v", doc)
	}
	// Valid date still exports unchanged on the unmatched path.
	if doc.DateFrom != "2024/05/12" {
		t.Fatalf("date from: %q", doc.DateFrom)
	}
}

func TestRunImpossibleDateForcesUnmatchedPath(t *testing.T) {
	doc, _, _ := runOne(t, internal.ExtractionRecord{
		FileName:  "doc4.pdf",
		FirstName: "Mario",
		LastName:  "Rossi",
		Date:      "31/02/2024",
		Cluster:   "Formazione",
	})

	if doc.DateFrom != internal.ErrorToken {
		t.Fatalf("date from: %q", doc.DateFrom)
	}
	if doc.PersonNumber != internal.NoEmployee || doc.DocumentType != internal.TypeDiscard {
		t.Fatalf("record with bad date must not match: %+v", doc)
	}
}

func TestRunAllErrorRecord(t *testing.T) {
	// A classification failure produces a record of pure error tokens; it
	// must flow through the ordinary unmatched path, never fail the batch.
	doc, att, _ := runOne(t, internal.ExtractionRecord{
		FileName:  "broken.pdf",
		FirstName: internal.ErrorToken,
		LastName:  internal.ErrorToken,
		Date:      internal.ErrorToken,
		Cluster:   internal.ErrorToken,
		Country:   internal.ErrorToken,
	})

	if doc.PersonNumber != internal.NoEmployee || doc.DocumentType != internal.TypeDiscard || doc.DocumentCode != "" {
		t.Fatalf("unexpected row: %+v", doc)
	}
	if att.File != "broken.pdf" {
		t.Fatalf("attachment must still reference the file: %+v", att)
	}
}

func TestRunCrossSectionInvariant(t *testing.T) {
	records := []internal.ExtractionRecord{
		{FileName: "a.pdf", FirstName: "Mario", LastName: "Rossi", Date: "2023-10-26", Cluster: "Part-time", Country: "Italy"},
		{FileName: "b.pdf", FirstName: "Luigi", LastName: "Verdi", Date: "2024-05-12", Cluster: "Cessazione"},
		{FileName: "c.pdf", FirstName: "ERRORE", LastName: "ERRORE", Date: "ERRORE"},
	}

	result := Run(records, testRegistry)
	for i := range result.Docs {
		assertSectionsAligned(t, result.Docs[i], result.Atts[i])
	}

	if result.Matched != 1 || result.Unmatched != 1 || result.Discarded != 1 {
		t.Fatalf("counts: %+v", result)
	}
	if !strings.HasPrefix(result.Blob, strings.Join(documentsOfRecordHeader, "|")) {
		t.Fatalf("blob missing header")
	}
}
