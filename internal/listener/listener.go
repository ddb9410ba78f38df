package listener

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hrdocs/internal/classifier"
	"hrdocs/internal/config"
	"hrdocs/internal/connectors"
	"hrdocs/internal/connectors/gcs"
	"hrdocs/internal/connectors/localdir"
	"hrdocs/internal/pipeline"
	"hrdocs/internal/storage"
)

type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

// Run polls the document source until the context is cancelled. A failing
// cycle is logged and the next tick retries from scratch.
func (s *Service) Run(ctx context.Context) error {
	if last, err := s.db.GetMetadata("listener.last_cycle"); err == nil && last != nil {
		log.Info().Str("lastCycle", *last).Msg("resuming listener")
	}

	for {
		if err := s.runCycle(ctx); err != nil {
			log.Error().Err(err).Msg("listener cycle failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle(ctx context.Context) error {
	sourceName := strings.ToLower(strings.TrimSpace(s.cfg.DocSource))
	source, err := s.makeSource(sourceName)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.RawDocDir, sourceName, source)
	fetchResult, err := fetchService.FetchAndStore(ctx, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	classified, err := processor.ClassifyFetched(ctx, classifier.NewClient(s.cfg), s.cfg.ListenerBatch)
	if err != nil {
		return err
	}

	processed, err := processor.ProcessClassified(s.cfg.ListenerBatch)
	if err != nil {
		return err
	}

	archivePath := ""
	if s.cfg.ListenerAutoExport && processed.Records > 0 {
		archivePath, err = processor.BuildArchiveFromRun(processed.Blob)
		if err != nil {
			return err
		}
		if s.cfg.ListenerAutoUpload {
			if err := s.uploadArchive(ctx, archivePath); err != nil {
				return err
			}
		}
	}

	log.Info().
		Str("source", sourceName).
		Int("listed", fetchResult.Listed).
		Int("stored", fetchResult.Stored).
		Int("classified", classified).
		Int("processed", processed.Records).
		Str("archive", archivePath).
		Msg("listener cycle done")
	_ = s.db.SetMetadata("listener.last_cycle", time.Now().UTC().Format(time.RFC3339))
	return nil
}

func (s *Service) uploadArchive(ctx context.Context, archivePath string) error {
	if s.cfg.ExportBucket == "" {
		return fmt.Errorf("EXPORT_BUCKET must be set for auto upload")
	}
	connector, err := gcs.NewConnector(s.cfg)
	if err != nil {
		return err
	}
	f, err := os.Open(archivePath)
	if err != nil {
		return err
	}
	defer f.Close()
	return connector.Upload(ctx, s.cfg.ExportBucket, filepath.Base(archivePath), f)
}

func (s *Service) makeSource(name string) (connectors.DocumentSource, error) {
	switch name {
	case "gcs":
		return gcs.NewConnector(s.cfg)
	case "local":
		return localdir.NewConnector(s.cfg.LocalInputDir), nil
	default:
		return nil, fmt.Errorf("unsupported document source: %s", name)
	}
}
