package pipeline

import (
	"strings"

	"hrdocs/internal"
)

// BuildRows derives the two export rows for one record. The attachment row
// mirrors the document row's PersonNumber, DocumentType, Country and
// DocumentCode, which downstream treats as a join key between the sections.
func BuildRows(record NormalizedRecord, outcome internal.MatchOutcome) (internal.DocumentRow, internal.AttachmentRow) {
	personNumber := internal.NoEmployee
	documentType := internal.TypeDiscard
	country := ""
	documentName := internal.NoEmployee
	if outcome.Matched {
		personNumber = outcome.PersonNumber
		documentType = record.Cluster
		documentName = record.FirstName + " " + record.LastName
		if ClassifyField(internal.FieldCountry, record.Country) == FieldValid {
			country = record.Country
		}
	}

	dateFrom := record.Date
	code := documentCode(personNumber, dateFrom, documentType)

	doc := internal.DocumentRow{
		FileName:          record.Raw.FileName,
		Metadata:          internal.MetadataMerge,
		DocumentsOfRecord: internal.ObjectDocumentsRecord,
		PersonNumber:      personNumber,
		DocumentType:      documentType,
		Country:           country,
		DocumentCode:      code,
		DocumentName:      documentName,
		DateFrom:          dateFrom,
		DateTo:            "",
		SourceSystemOwner: internal.SourceSystemOwner,
		SourceSystemID:    code,
	}

	att := internal.AttachmentRow{
		FileName:            record.Raw.FileName,
		Metadata:            internal.MetadataMerge,
		DocumentAttachment:  internal.ObjectAttachment,
		PersonNumber:        personNumber,
		DocumentType:        documentType,
		Country:             country,
		DocumentCode:        code,
		DataTypeCode:        internal.DataTypeFile,
		URLorTextorFileName: record.Raw.FileName,
		Title:               record.Raw.FileName,
		File:                record.Raw.FileName,
		SourceSystemOwner:   internal.SourceSystemOwner,
		SourceSystemID:      code,
	}

	return doc, att
}

// documentCode is the downstream system's natural key. It exists only when
// all three parts are real: a matched person, a real date and a non-discarded
// document type.
func documentCode(personNumber, dateFrom, documentType string) string {
	if personNumber == internal.NoEmployee || documentType == internal.TypeDiscard {
		return ""
	}
	if ClassifyField(internal.FieldDate, dateFrom) != FieldValid {
		return ""
	}
	return personNumber + "_" + strings.ReplaceAll(dateFrom, "/", "") + "_" + strings.ReplaceAll(documentType, " ", "_")
}
