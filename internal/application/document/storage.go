package document

import (
	"context"
	"io"
	"time"
)

// ObjectStorage abstracts the document blob store
type ObjectStorage interface {
	// Put stores an object under the given key
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// Get retrieves an object; the caller closes the returned reader
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes an object
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is present
	Exists(ctx context.Context, key string) (bool, error)
	// PresignDownload returns a time-limited download URL for an object
	PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}
