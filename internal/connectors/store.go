package connectors

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"hrdocs/internal"
	"hrdocs/internal/storage"
)

// DocumentStore writes fetched documents to disk under their original base
// name, so the export archive keeps the source file names, and keeps the
// documents table in sync. The content hash detects refetches of a changed
// object.
type DocumentStore struct {
	db        *storage.DB
	rawDocDir string
}

func NewDocumentStore(db *storage.DB, rawDocDir string) *DocumentStore {
	return &DocumentStore{db: db, rawDocDir: rawDocDir}
}

func (s *DocumentStore) Store(source, name string, content []byte, mimeType string, pageCount int) (internal.DocumentFile, error) {
	hashBytes := sha256.Sum256(content)
	hash := hex.EncodeToString(hashBytes[:])

	// Refetching an unchanged object must not reset its pipeline status.
	existing, err := s.db.GetDocumentByName(source, name)
	if err != nil {
		return internal.DocumentFile{}, err
	}
	if existing != nil && existing.Hash == hash {
		return *existing, nil
	}

	if err := os.MkdirAll(s.rawDocDir, 0o755); err != nil {
		return internal.DocumentFile{}, err
	}

	rawPath := filepath.Join(s.rawDocDir, filepath.Base(name))
	if err := os.WriteFile(rawPath, content, 0o644); err != nil {
		return internal.DocumentFile{}, err
	}

	return s.db.UpsertDocument(source, name, hash, rawPath, mimeType, pageCount, internal.DocStatusFetched)
}
