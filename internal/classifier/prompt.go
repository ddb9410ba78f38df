package classifier

import (
	"strings"

	"hrdocs/internal"
)

// ClassificationPrompt is the instruction sent with every document. It is in
// Italian on purpose: the documents and the downstream cluster labels are.
func ClassificationPrompt() string {
	return `Classifica ogni documento fornito, che può essere in formato TIFF, PDF o altri formati di immagine, assegnandolo a uno dei seguenti cluster specifici:

` + strings.Join(internal.Clusters, ", ") + `. Se non sei sicuro al 100% della categoria, assegna "` + internal.NoCluster + `".

Estrai inoltre da ogni documento i seguenti dati chiave: Nome, Cognome, Data (intesa come la data di redazione presente nel documento) e Country (il paese del documento, in inglese).

Procedi in modo accurato e dettagliato, analizzando il contenuto dei documenti per supportare la classificazione e l'estrazione delle informazioni.

# Steps

1. Analizza il contenuto del documento fornito (TIFF, PDF o altro formato immagine).
2. Identifica ed estrai con precisione Nome, Cognome, la Data di redazione e il paese dal testo.
3. Valuta il documento per determinarne la classificazione, confrontandolo con i cluster elencati.
4. Se la corrispondenza con un cluster è incerta, assegna "` + internal.NoCluster + `".

# Output Format

Restituisci solo una risposta strutturata in JSON con i seguenti campi, senza commenti o spiegazioni aggiuntive:
` + "```json" + `
{
  "Nome": "[Nome estratto o 'Non Trovato']",
  "Cognome": "[Cognome estratto o 'Non Trovato']",
  "Data": "[Data estratta in formato ISO 8601, es. YYYY-MM-DD, o 'Non Trovata']",
  "Cluster": "[Nome cluster assegnato o '` + internal.NoCluster + `']",
  "Country": "[Paese in inglese o 'Non Trovato']"
}
` + "```"
}
