package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"hrdocs/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  name TEXT NOT NULL,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'fetched',
  rawRef TEXT NOT NULL,
  mimeType TEXT,
  pageCount INTEGER NOT NULL DEFAULT 0,
  fetchedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(source, name)
);
CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);

CREATE TABLE IF NOT EXISTS extractions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL UNIQUE,
  fileName TEXT NOT NULL,
  nome TEXT NOT NULL,
  cognome TEXT NOT NULL,
  data TEXT NOT NULL,
  cluster TEXT NOT NULL,
  country TEXT NOT NULL,
  rawJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS matches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  documentId INTEGER NOT NULL UNIQUE,
  matched INTEGER NOT NULL,
  personNumber TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(documentId) REFERENCES documents(id)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  timingsJson TEXT NOT NULL,
  exportRef TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) UpsertDocument(source, name, hash, rawRef, mimeType string, pageCount int, status string) (internal.DocumentFile, error) {
	_, err := d.conn.Exec(`
INSERT INTO documents (source, name, hash, status, rawRef, mimeType, pageCount)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(source, name) DO UPDATE SET
  hash=excluded.hash,
  rawRef=excluded.rawRef,
  mimeType=excluded.mimeType,
  pageCount=excluded.pageCount,
  updatedAt=CURRENT_TIMESTAMP
`, source, name, hash, status, rawRef, mimeType, pageCount)
	if err != nil {
		return internal.DocumentFile{}, err
	}

	doc, err := d.GetDocumentByName(source, name)
	if err != nil {
		return internal.DocumentFile{}, err
	}
	if doc == nil {
		return internal.DocumentFile{}, errors.New("failed to upsert document")
	}
	return *doc, nil
}

func (d *DB) GetDocumentByName(source, name string) (*internal.DocumentFile, error) {
	var doc internal.DocumentFile
	err := d.conn.QueryRow(`
SELECT id, source, name, hash, status, rawRef, IFNULL(mimeType, ''), pageCount, fetchedAt
FROM documents WHERE source = ? AND name = ?
`, source, name).Scan(
		&doc.ID, &doc.Source, &doc.Name, &doc.Hash, &doc.Status, &doc.RawRef, &doc.MimeType, &doc.PageCount, &doc.FetchedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *DB) ListDocumentsByStatus(status string, limit int) ([]internal.DocumentFile, error) {
	rows, err := d.conn.Query(`
SELECT id, source, name, hash, status, rawRef, IFNULL(mimeType, ''), pageCount, fetchedAt
FROM documents WHERE status = ? ORDER BY fetchedAt ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.DocumentFile
	for rows.Next() {
		var doc internal.DocumentFile
		if err := rows.Scan(&doc.ID, &doc.Source, &doc.Name, &doc.Hash, &doc.Status, &doc.RawRef, &doc.MimeType, &doc.PageCount, &doc.FetchedAt); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (d *DB) UpdateDocumentStatus(documentID int, status string) error {
	_, err := d.conn.Exec(`UPDATE documents SET status = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?`, status, documentID)
	return err
}

func (d *DB) UpsertExtraction(documentID int, record internal.ExtractionRecord) error {
	rawJSON, _ := json.Marshal(record)
	_, err := d.conn.Exec(`
INSERT INTO extractions (documentId, fileName, nome, cognome, data, cluster, country, rawJson)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(documentId) DO UPDATE SET
  fileName=excluded.fileName,
  nome=excluded.nome,
  cognome=excluded.cognome,
  data=excluded.data,
  cluster=excluded.cluster,
  country=excluded.country,
  rawJson=excluded.rawJson
`, documentID, record.FileName, record.FirstName, record.LastName, record.Date, record.Cluster, record.Country, string(rawJSON))
	return err
}

// ExtractionRow pairs a stored extraction record with its document id so the
// processing loop can flip document statuses after a run.
type ExtractionRow struct {
	DocumentID int
	Record     internal.ExtractionRecord
}

func (d *DB) ListExtractionsByDocumentStatus(status string, limit int) ([]ExtractionRow, error) {
	rows, err := d.conn.Query(`
SELECT e.documentId, e.fileName, e.nome, e.cognome, e.data, e.cluster, e.country
FROM extractions e
JOIN documents doc ON doc.id = e.documentId
WHERE doc.status = ?
ORDER BY e.fileName ASC
LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExtractionRow
	for rows.Next() {
		var row ExtractionRow
		if err := rows.Scan(
			&row.DocumentID,
			&row.Record.FileName, &row.Record.FirstName, &row.Record.LastName,
			&row.Record.Date, &row.Record.Cluster, &row.Record.Country,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) UpsertMatch(documentID int, outcome internal.MatchOutcome) error {
	matched := 0
	if outcome.Matched {
		matched = 1
	}
	_, err := d.conn.Exec(`
INSERT INTO matches (documentId, matched, personNumber)
VALUES (?, ?, ?)
ON CONFLICT(documentId) DO UPDATE SET
  matched=excluded.matched,
  personNumber=excluded.personNumber,
  createdAt=CURRENT_TIMESTAMP
`, documentID, matched, outcome.PersonNumber)
	return err
}

func (d *DB) InsertRun(traceID string, counts map[string]int, timings map[string]float64, exportRef string) error {
	countsJSON, _ := json.Marshal(counts)
	timingsJSON, _ := json.Marshal(timings)
	_, err := d.conn.Exec(`INSERT INTO runs (traceId, countsJson, timingsJson, exportRef) VALUES (?, ?, ?, ?)`,
		traceID, string(countsJSON), string(timingsJSON), exportRef)
	return err
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
