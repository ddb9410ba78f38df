package classifier

import (
	"testing"

	"hrdocs/internal"
)

func TestParseModelResponseFenced(t *testing.T) {
	text := "```json\n{\"Nome\": \"Mario\", \"Cognome\": \"Rossi\", \"Data\": \"2023-10-26\", \"Cluster\": \"Proposta di assunzione\", \"Country\": \"Italy\"}\n```"

	record := ParseModelResponse(text, "input/doc1.pdf")
	if record.FileName != "input/doc1.pdf" {
		t.Fatalf("file name: %q", record.FileName)
	}
	if record.FirstName != "Mario" || record.LastName != "Rossi" {
		t.Fatalf("unexpected identity: %+v", record)
	}
	if record.Cluster != "Proposta di assunzione" || record.Country != "Italy" {
		t.Fatalf("unexpected cluster/country: %+v", record)
	}
}

func TestParseModelResponseBare(t *testing.T) {
	record := ParseModelResponse(`{"Nome": "Luigi", "Cognome": "Verdi", "Data": "2024-05-12", "Cluster": "Cessazione"}`, "a.tif")
	if record.FirstName != "Luigi" || record.Date != "2024-05-12" {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Country != "" {
		t.Fatalf("missing country should be empty, got %q", record.Country)
	}
}

func TestParseModelResponseMissingFields(t *testing.T) {
	record := ParseModelResponse(`{"Nome": "Non Trovato", "Cognome": "", "Data": "Non Trovata", "Cluster": "qualcosa di inventato", "Country": "Non Trovato"}`, "a.pdf")
	if record.FirstName != internal.NoNamePlaceholder {
		t.Fatalf("first name: %q", record.FirstName)
	}
	if record.LastName != internal.NoLastNamePlaceholder {
		t.Fatalf("last name: %q", record.LastName)
	}
	if record.Date != internal.NoDatePlaceholder {
		t.Fatalf("date: %q", record.Date)
	}
	if record.Cluster != internal.NoCluster {
		t.Fatalf("unknown cluster should snap to %q, got %q", internal.NoCluster, record.Cluster)
	}
	if record.Country != "" {
		t.Fatalf("country: %q", record.Country)
	}
}

func TestParseModelResponseGarbage(t *testing.T) {
	record := ParseModelResponse("the document appears to be a letter", "b.pdf")
	want := ErrorRecord("b.pdf")
	if record != want {
		t.Fatalf("got %+v want %+v", record, want)
	}
}

func TestSnapClusterKeepsKnownLabels(t *testing.T) {
	if got := snapCluster("proposta di assunzione"); got != "Proposta di assunzione" {
		t.Fatalf("got %q", got)
	}
	if got := snapCluster("Error"); got != internal.ErrorToken {
		t.Fatalf("got %q", got)
	}
}
