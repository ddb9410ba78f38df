package internal

// Tokens of the upstream classification contract and the downstream export.
// These are wire values, not display strings.
const (
	ErrorToken = "ERRORE"

	NoNamePlaceholder     = "NONAME"
	NoLastNamePlaceholder = "NOLASTNAME"
	NoDatePlaceholder     = "NODATE"

	NoCluster   = "Nessun cluster"
	NoEmployee  = "Nessun dipendente"
	TypeDiscard = "SCARTATO"

	MetadataMerge         = "MERGE"
	ObjectDocumentsRecord = "DocumentsOfRecord"
	ObjectAttachment      = "DocumentAttachment"
	DataTypeFile          = "FILE"
	SourceSystemOwner     = "PEOPLE"
)

type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldDate      Field = "document_date"
	FieldCountry   Field = "country"
)

// Placeholders maps each field to the token the classification service emits
// when the field is intentionally absent. Distinct from ErrorToken, which
// means extraction failed.
var Placeholders = map[Field]string{
	FieldFirstName: NoNamePlaceholder,
	FieldLastName:  NoLastNamePlaceholder,
	FieldDate:      NoDatePlaceholder,
}

// Clusters is the closed set of document-type labels the classification
// prompt allows. Anything else collapses to NoCluster.
var Clusters = []string{
	"Provvedimenti a favore",
	"Supervisione Mifid",
	"Flessibilità orarie",
	"Polizza sanitaria",
	"Formazione",
	"Fringe benefits",
	"Assunzione matricola",
	"Primo impiego",
	"Fondo pensione",
	"Nulla osta assunzione",
	"Destinazione TFR",
	"Nomina titolarità",
	"Assegnazione ruolo",
	"Part-time",
	"Cessazione",
	"Proroga TD",
	"Provvedimenti disciplinari",
	"Trasferimento",
	"Lettera assunzione",
	"Titolarità temporanee",
	"Trasformazione TI",
	"Proposta di assunzione",
}

// ExtractionRecord is one document's classification result. The json tags are
// the wire contract with the classification service; every field is always a
// string, absence is a token, never a missing key.
type ExtractionRecord struct {
	FileName  string `json:"File_Name"`
	FirstName string `json:"Nome"`
	LastName  string `json:"Cognome"`
	Date      string `json:"Data"`
	Cluster   string `json:"Cluster"`
	Country   string `json:"Country"`
}

// PersonnelEntry is one row of the employee registry.
type PersonnelEntry struct {
	FirstName    string
	LastName     string
	PersonNumber string
	Attributes   map[string]string
}

type MatchOutcome struct {
	Matched      bool
	PersonNumber string
}

// DocumentRow is a "Documents of Record" export row, in column order.
type DocumentRow struct {
	FileName          string
	Metadata          string
	DocumentsOfRecord string
	PersonNumber      string
	DocumentType      string
	Country           string
	DocumentCode      string
	DocumentName      string
	DateFrom          string
	DateTo            string
	SourceSystemOwner string
	SourceSystemID    string
}

// AttachmentRow is a "Document Attachment" export row, in column order.
type AttachmentRow struct {
	FileName            string
	Metadata            string
	DocumentAttachment  string
	PersonNumber        string
	DocumentType        string
	Country             string
	DocumentCode        string
	DataTypeCode        string
	URLorTextorFileName string
	Title               string
	File                string
	SourceSystemOwner   string
	SourceSystemID      string
}

// DocumentFile is one fetched source document tracked in storage.
type DocumentFile struct {
	ID        int
	Source    string
	Name      string
	Hash      string
	Status    string
	RawRef    string
	MimeType  string
	PageCount int
	FetchedAt string
}

const (
	DocStatusFetched    = "fetched"
	DocStatusClassified = "classified"
	DocStatusProcessed  = "processed"
	DocStatusExported   = "exported"
)
