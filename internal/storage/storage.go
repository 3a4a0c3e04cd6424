package storage

import (
	"context"
	"io"
)

// BlobStore is the media upload collaborator. Images are referenced by a
// public URL plus an opaque storage key; the key is what Delete needs.
type BlobStore interface {
	// Store writes the object under a generated key inside folder and
	// returns the public URL and the storage key.
	Store(ctx context.Context, reader io.Reader, size int64, folder, contentType string) (url, key string, err error)

	// Delete removes the object behind key. Callers treat failures as
	// best-effort: log and continue.
	Delete(ctx context.Context, key string) error
}
