package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"hrdocs/internal"
	"hrdocs/internal/classifier"
	"hrdocs/internal/config"
	"hrdocs/internal/registry"
	"hrdocs/internal/storage"
)

// RunResult is the outcome of one full batch transformation.
type RunResult struct {
	Blob      string
	Docs      []internal.DocumentRow
	Atts      []internal.AttachmentRow
	Outcomes  []internal.MatchOutcome
	Matched   int
	Unmatched int
	Discarded int
}

// Run is the batch driver: normalization, matching, building, serialization,
// in input order. It is pure; callers own all I/O around it.
func Run(records []internal.ExtractionRecord, entries []internal.PersonnelEntry) RunResult {
	normalized := NormalizeRecords(records)
	matcher := NewMatcher(entries)

	result := RunResult{
		Docs:     make([]internal.DocumentRow, 0, len(normalized)),
		Atts:     make([]internal.AttachmentRow, 0, len(normalized)),
		Outcomes: make([]internal.MatchOutcome, 0, len(normalized)),
	}

	for _, record := range normalized {
		outcome := matcher.Match(record)
		doc, att := BuildRows(record, outcome)

		result.Docs = append(result.Docs, doc)
		result.Atts = append(result.Atts, att)
		result.Outcomes = append(result.Outcomes, outcome)
		switch {
		case outcome.Matched:
			result.Matched++
		case record.Discarded():
			result.Discarded++
		default:
			result.Unmatched++
		}
	}

	result.Blob = RenderExport(result.Docs, result.Atts)
	return result
}

// Classifier is the external extraction oracle, one call per document.
type Classifier interface {
	Classify(ctx context.Context, fileName, mimeType string, content []byte) (internal.ExtractionRecord, error)
}

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg}
}

// ClassifyFetched runs the classifier over fetched documents. A failing model
// call degrades that one document to an all-error record and the batch moves
// on.
func (s *ProcessingService) ClassifyFetched(ctx context.Context, client Classifier, batch int) (int, error) {
	docs, err := s.db.ListDocumentsByStatus(internal.DocStatusFetched, batch)
	if err != nil {
		return 0, err
	}

	classified := 0
	for _, doc := range docs {
		record, err := s.classifyOne(ctx, client, doc)
		if err != nil {
			log.Warn().Str("name", doc.Name).Err(err).Msg("classification failed, emitting error record")
			record = classifier.ErrorRecord(doc.Name)
		}
		if err := s.db.UpsertExtraction(doc.ID, record); err != nil {
			return classified, err
		}
		if err := s.db.UpdateDocumentStatus(doc.ID, internal.DocStatusClassified); err != nil {
			return classified, err
		}
		classified++
	}
	return classified, nil
}

func (s *ProcessingService) classifyOne(ctx context.Context, client Classifier, doc internal.DocumentFile) (internal.ExtractionRecord, error) {
	content, err := os.ReadFile(doc.RawRef)
	if err != nil {
		return internal.ExtractionRecord{}, err
	}

	det := DetectDocument(doc.Name, content)
	if !det.Supported {
		return classifier.ErrorRecord(doc.Name), nil
	}
	return client.Classify(ctx, doc.Name, det.MimeType, content)
}

type ProcessResult struct {
	Records    int
	Matched    int
	Unmatched  int
	Discarded  int
	ExportPath string
	Blob       string
}

// ProcessClassified loads the registry, runs the batch over every classified
// document and writes the export file. Registry or export I/O failures fail
// the whole run; a partial export would corrupt the downstream ingestion.
func (s *ProcessingService) ProcessClassified(batch int) (ProcessResult, error) {
	start := time.Now()

	rows, err := s.db.ListExtractionsByDocumentStatus(internal.DocStatusClassified, batch)
	if err != nil {
		return ProcessResult{}, err
	}
	if len(rows) == 0 {
		return ProcessResult{}, nil
	}

	entries, err := registry.Load(s.cfg.RegistryPath, s.cfg.RegistryPersonColumn)
	if err != nil {
		return ProcessResult{}, err
	}

	records := make([]internal.ExtractionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.Record)
	}

	result := Run(records, entries)

	exportPath := filepath.Join(s.cfg.OutputDir, s.cfg.ExportFileName)
	if err := WriteExport(result.Blob, exportPath); err != nil {
		return ProcessResult{}, fmt.Errorf("write export: %w", err)
	}

	for i, row := range rows {
		if err := s.db.UpsertMatch(row.DocumentID, result.Outcomes[i]); err != nil {
			return ProcessResult{}, err
		}
		if err := s.db.UpdateDocumentStatus(row.DocumentID, internal.DocStatusProcessed); err != nil {
			return ProcessResult{}, err
		}
	}

	counts := map[string]int{
		"records":   len(records),
		"matched":   result.Matched,
		"unmatched": result.Unmatched,
		"discarded": result.Discarded,
	}
	timings := map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())}
	_ = s.db.InsertRun(traceID(), counts, timings, exportPath)

	log.Info().
		Int("records", len(records)).
		Int("matched", result.Matched).
		Int("unmatched", result.Unmatched).
		Int("discarded", result.Discarded).
		Str("export", exportPath).
		Msg("batch processed")

	return ProcessResult{
		Records:    len(records),
		Matched:    result.Matched,
		Unmatched:  result.Unmatched,
		Discarded:  result.Discarded,
		ExportPath: exportPath,
		Blob:       result.Blob,
	}, nil
}

// BuildArchiveFromRun packages the export blob with the fetched source
// documents into the solution archive.
func (s *ProcessingService) BuildArchiveFromRun(blob string) (string, error) {
	archivePath := filepath.Join(s.cfg.OutputDir, s.cfg.ArchiveName)
	if err := BuildArchive(blob, s.cfg.ExportFileName, s.cfg.RawDocDir, archivePath); err != nil {
		return "", fmt.Errorf("build archive: %w", err)
	}
	return archivePath, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
