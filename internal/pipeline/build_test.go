package pipeline

import (
	"testing"

	"hrdocs/internal"
)

func TestBuildRowsMatched(t *testing.T) {
	record := NormalizeRecord(internal.ExtractionRecord{
		FileName:  "doc1.pdf",
		FirstName: "Mario",
		LastName:  "Rossi",
		Date:      "2023-10-26",
		Cluster:   "Proposta di assunzione",
		Country:   "Italy",
	})
	doc, att := BuildRows(record, internal.MatchOutcome{Matched: true, PersonNumber: "P001"})

	if doc.PersonNumber != "P001" {
		t.Fatalf("person number: %q", doc.PersonNumber)
	}
	if doc.DocumentType != "Proposta di assunzione" {
		t.Fatalf("document type: %q", doc.DocumentType)
	}
	if doc.Country != "Italy" {
		t.Fatalf("country: %q", doc.Country)
	}
	if doc.DocumentName != "MARIO ROSSI" {
		t.Fatalf("document name: %q", doc.DocumentName)
	}
	if doc.DateFrom != "2023/10/26" {
		t.Fatalf("date from: %q", doc.DateFrom)
	}
	if doc.DocumentCode != "P001_20231026_Proposta_di_assunzione" {
		t.Fatalf("document code: %q", doc.DocumentCode)
	}
	if doc.SourceSystemID != doc.DocumentCode {
		t.Fatalf("source system id %q != code %q", doc.SourceSystemID, doc.DocumentCode)
	}
	if doc.Metadata != internal.MetadataMerge || doc.DocumentsOfRecord != internal.ObjectDocumentsRecord {
		t.Fatalf("constants wrong: %+v", doc)
	}
	if doc.DateTo != "" || doc.SourceSystemOwner != internal.SourceSystemOwner {
		t.Fatalf("constants wrong: %+v", doc)
	}

	if att.DataTypeCode != internal.DataTypeFile || att.DocumentAttachment != internal.ObjectAttachment {
		t.Fatalf("attachment constants wrong: %+v", att)
	}
	if att.URLorTextorFileName != "doc1.pdf" || att.Title != "doc1.pdf" || att.File != "doc1.pdf" {
		t.Fatalf("attachment file fields wrong: %+v", att)
	}
	assertSectionsAligned(t, doc, att)
}

func TestBuildRowsUnmatched(t *testing.T) {
	record := NormalizeRecord(internal.ExtractionRecord{
		FileName:  "doc2.pdf",
		FirstName: "Luigi",
		LastName:  "Verdi",
		Date:      "2024-05-12",
		Cluster:   "Cessazione",
		Country:   "Italy",
	})
	doc, att := BuildRows(record, internal.MatchOutcome{})

	if doc.PersonNumber != internal.NoEmployee {
		t.Fatalf("person number: %q", doc.PersonNumber)
	}
	if doc.DocumentType != internal.TypeDiscard {
		t.Fatalf("document type: %q", doc.DocumentType)
	}
	if doc.Country != "" {
		t.Fatalf("country must be empty, got %q", doc.Country)
	}
	if doc.DocumentName != internal.NoEmployee {
		t.Fatalf("document name: %q", doc.DocumentName)
	}
	// The date survives unchanged even on the unmatched path.
	if doc.DateFrom != "2024/05/12" {
		t.Fatalf("date from: %q", doc.DateFrom)
	}
	if doc.DocumentCode != "" || doc.SourceSystemID != "" {
		t.Fatalf("code must be empty: %+v", doc)
	}
	assertSectionsAligned(t, doc, att)
}

func TestDocumentCodeThreeWayGuard(t *testing.T) {
	cases := []struct {
		name         string
		personNumber string
		dateFrom     string
		documentType string
		want         string
	}{
		{name: "all good", personNumber: "P001", dateFrom: "2023/10/26", documentType: "Part-time", want: "P001_20231026_Part-time"},
		{name: "no employee", personNumber: internal.NoEmployee, dateFrom: "2023/10/26", documentType: "Part-time", want: ""},
		{name: "placeholder date", personNumber: "P001", dateFrom: "NODATE", documentType: "Part-time", want: ""},
		{name: "error date", personNumber: "P001", dateFrom: "ERRORE", documentType: "Part-time", want: ""},
		{name: "discarded type", personNumber: "P001", dateFrom: "2023/10/26", documentType: internal.TypeDiscard, want: ""},
		{name: "spaces to underscores", personNumber: "P001", dateFrom: "2023/10/26", documentType: "Proposta di assunzione", want: "P001_20231026_Proposta_di_assunzione"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := documentCode(tc.personNumber, tc.dateFrom, tc.documentType); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestBuildRowsMatchedWithErrorCountry(t *testing.T) {
	record := NormalizeRecord(internal.ExtractionRecord{
		FileName:  "doc3.pdf",
		FirstName: "Anna",
		LastName:  "Bianchi",
		Date:      "2024-01-15",
		Cluster:   "Formazione",
		Country:   "Error",
	})
	doc, _ := BuildRows(record, internal.MatchOutcome{Matched: true, PersonNumber: "P002"})
	if doc.Country != "" {
		t.Fatalf("error country must serialize empty, got %q", doc.Country)
	}
}

func assertSectionsAligned(t *testing.T, doc internal.DocumentRow, att internal.AttachmentRow) {
	t.Helper()
	if att.PersonNumber != doc.PersonNumber ||
		att.DocumentType != doc.DocumentType ||
		att.Country != doc.Country ||
		att.DocumentCode != doc.DocumentCode {
		t.Fatalf("sections disagree:\ndoc %+v\natt %+v", doc, att)
	}
}
