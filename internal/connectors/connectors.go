package connectors

import "context"

// RemoteDocument is one listable document at the source, before download.
type RemoteDocument struct {
	Name string
	Size int64
}

type DocumentSource interface {
	List(ctx context.Context, max int) ([]RemoteDocument, error)
	Fetch(ctx context.Context, name string) ([]byte, error)
}
