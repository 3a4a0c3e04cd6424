package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/artstack/creative-showcase/internal/storage"
	"github.com/google/uuid"
)

var _ storage.BlobStore = (*FakeBlobStore)(nil)

// FakeBlobStore is an in-memory BlobStore for service tests. It records
// stored and deleted keys so tests can assert on asset lifecycle.
type FakeBlobStore struct {
	mu sync.Mutex

	Objects     map[string][]byte
	DeletedKeys []string

	// FailDelete makes Delete return an error, to exercise the
	// best-effort deletion paths.
	FailDelete bool
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{
		Objects: make(map[string][]byte),
	}
}

func (f *FakeBlobStore) Store(ctx context.Context, reader io.Reader, size int64, folder, contentType string) (string, string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	key := fmt.Sprintf("%s/%s", folder, uuid.New().String())
	f.Objects[key] = data

	return "https://media.test/" + key, key, nil
}

func (f *FakeBlobStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailDelete {
		return errors.New("blob store unavailable")
	}

	delete(f.Objects, key)
	f.DeletedKeys = append(f.DeletedKeys, key)
	return nil
}

// Has reports whether an object is currently stored under key.
func (f *FakeBlobStore) Has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.Objects[key]
	return ok
}
