package gcs

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"hrdocs/internal/config"
	"hrdocs/internal/connectors"
	"hrdocs/internal/pipeline"
)

// Connector reads scanned documents from the input bucket and writes export
// artifacts to the export bucket.
type Connector struct {
	service *storage.Service
	bucket  string
	prefix  string
}

func NewConnector(cfg config.Config) (*Connector, error) {
	if err := cfg.Require("INPUT_BUCKET", cfg.InputBucket); err != nil {
		return nil, err
	}

	tokenSource, err := makeTokenSource(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	svc, err := storage.NewService(context.Background(), option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}

	return &Connector{service: svc, bucket: cfg.InputBucket, prefix: cfg.InputPrefix}, nil
}

func makeTokenSource(ctx context.Context, cfg config.Config) (oauth2.TokenSource, error) {
	if cfg.GCSCredentialsFile != "" {
		data, err := os.ReadFile(cfg.GCSCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read gcs credentials: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, storage.DevstorageReadWriteScope)
		if err != nil {
			return nil, fmt.Errorf("parse gcs credentials: %w", err)
		}
		return creds.TokenSource, nil
	}
	return google.DefaultTokenSource(ctx, storage.DevstorageReadWriteScope)
}

func (c *Connector) List(ctx context.Context, max int) ([]connectors.RemoteDocument, error) {
	call := c.service.Objects.List(c.bucket).Prefix(c.prefix).Context(ctx)
	if max > 0 {
		call = call.MaxResults(int64(max))
	}

	out := []connectors.RemoteDocument{}
	for {
		resp, err := call.Do()
		if err != nil {
			return nil, err
		}
		for _, obj := range resp.Items {
			if strings.HasSuffix(obj.Name, "/") || !pipeline.IsDocumentFile(obj.Name) {
				continue
			}
			out = append(out, connectors.RemoteDocument{Name: obj.Name, Size: int64(obj.Size)})
			if max > 0 && len(out) >= max {
				return out, nil
			}
		}
		if resp.NextPageToken == "" {
			return out, nil
		}
		call = call.PageToken(resp.NextPageToken)
	}
}

func (c *Connector) Fetch(ctx context.Context, name string) ([]byte, error) {
	resp, err := c.service.Objects.Get(c.bucket, name).Context(ctx).Download()
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Upload writes an artifact into the given bucket under objectName.
func (c *Connector) Upload(ctx context.Context, bucket, objectName string, content io.Reader) error {
	_, err := c.service.Objects.Insert(bucket, &storage.Object{Name: objectName}).Media(content).Context(ctx).Do()
	return err
}
