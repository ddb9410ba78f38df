package pipeline

import (
	"testing"

	"hrdocs/internal"
)

func TestClassifyField(t *testing.T) {
	cases := []struct {
		name  string
		field internal.Field
		value string
		want  FieldClass
	}{
		{name: "regular name", field: internal.FieldFirstName, value: "MARIO", want: FieldValid},
		{name: "error token", field: internal.FieldFirstName, value: "ERRORE", want: FieldError},
		{name: "error token padded", field: internal.FieldLastName, value: " errore ", want: FieldError},
		{name: "own placeholder", field: internal.FieldFirstName, value: "NONAME", want: FieldPlaceholder},
		{name: "other field placeholder is data", field: internal.FieldFirstName, value: "NODATE", want: FieldValid},
		{name: "date placeholder", field: internal.FieldDate, value: "NODATE", want: FieldPlaceholder},
		{name: "real date", field: internal.FieldDate, value: "2023/10/26", want: FieldValid},
		{name: "country has no placeholder", field: internal.FieldCountry, value: "Italy", want: FieldValid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyField(tc.field, tc.value); got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestDiscardedIsPerRecordOr(t *testing.T) {
	good := NormalizeRecord(internal.ExtractionRecord{FirstName: "Mario", LastName: "Rossi", Date: "2023-10-26"})
	if good.Discarded() {
		t.Fatalf("good record discarded")
	}

	// A valid name with a missing date is still discarded.
	noDate := NormalizeRecord(internal.ExtractionRecord{FirstName: "Mario", LastName: "Rossi", Date: "NODATE"})
	if !noDate.Discarded() {
		t.Fatalf("record without date not discarded")
	}

	badName := NormalizeRecord(internal.ExtractionRecord{FirstName: "ERRORE", LastName: "Bianchi", Date: "2024-05-12"})
	if !badName.Discarded() {
		t.Fatalf("record with error name not discarded")
	}
}
