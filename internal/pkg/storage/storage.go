package storage

import (
	"context"
	"io"
)

// Store abstracts blob storage for uploaded photo content.
type Store interface {
	// Save writes content under the given relative path.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at the given relative path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at the given relative path.
	// Deleting a missing blob is not an error.
	Delete(ctx context.Context, path string) error
}
