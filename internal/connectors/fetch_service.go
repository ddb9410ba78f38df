package connectors

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hrdocs/internal/pipeline"
	"hrdocs/internal/storage"
)

type FetchService struct {
	source     DocumentSource
	sourceName string
	store      *DocumentStore
}

type FetchResult struct {
	Listed int
	Stored int
}

func NewFetchService(db *storage.DB, rawDocDir string, sourceName string, source DocumentSource) *FetchService {
	return &FetchService{
		source:     source,
		sourceName: sourceName,
		store:      NewDocumentStore(db, rawDocDir),
	}
}

// FetchAndStore downloads up to max listable documents and records them as
// fetched. A single failing download fails the fetch, not the documents
// already stored.
func (s *FetchService) FetchAndStore(ctx context.Context, max int) (FetchResult, error) {
	remote, err := s.source.List(ctx, max)
	if err != nil {
		return FetchResult{}, fmt.Errorf("list documents: %w", err)
	}

	stored := 0
	for _, doc := range remote {
		content, err := s.source.Fetch(ctx, doc.Name)
		if err != nil {
			return FetchResult{Listed: len(remote), Stored: stored}, fmt.Errorf("fetch %s: %w", doc.Name, err)
		}

		det := pipeline.DetectDocument(doc.Name, content)
		if _, err := s.store.Store(s.sourceName, doc.Name, content, det.MimeType, det.PageCount); err != nil {
			return FetchResult{Listed: len(remote), Stored: stored}, err
		}
		stored++
		log.Debug().Str("source", s.sourceName).Str("name", doc.Name).Str("mime", det.MimeType).Msg("document stored")
	}

	return FetchResult{Listed: len(remote), Stored: stored}, nil
}
