package localdir

import (
	"context"
	"os"
	"path/filepath"

	"hrdocs/internal/connectors"
	"hrdocs/internal/pipeline"
)

// Connector serves documents from a local directory, for offline runs and
// for replaying a batch that was already downloaded.
type Connector struct {
	dir string
}

func NewConnector(dir string) *Connector {
	return &Connector{dir: dir}
}

func (c *Connector) List(_ context.Context, max int) ([]connectors.RemoteDocument, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, err
	}

	out := []connectors.RemoteDocument{}
	for _, entry := range entries {
		if entry.IsDir() || !pipeline.IsDocumentFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, connectors.RemoteDocument{Name: entry.Name(), Size: info.Size()})
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out, nil
}

func (c *Connector) Fetch(_ context.Context, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.dir, filepath.Base(name)))
}
