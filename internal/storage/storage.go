package storage

import (
	"context"
	"io"
)

// BlobStore is a content store keyed by relative path. The application
// persists only the path; retrieval names are derived elsewhere.
type BlobStore interface {
	Save(ctx context.Context, path string, r io.Reader) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
}
