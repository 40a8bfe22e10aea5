package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrBlobNotFound is returned by Get when nothing was ever stored under key.
var ErrBlobNotFound = errors.New("state blob not found")

// StateBlobRepository defines the persistence contract of the State Store:
// one opaque JSON document per key. Implementations must write synchronously.
type StateBlobRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

type memoryBlobRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobRepository keeps blobs in process memory. Nothing survives a restart.
func NewMemoryBlobRepository() StateBlobRepository {
	return &memoryBlobRepo{blobs: make(map[string][]byte)}
}

func (r *memoryBlobRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.blobs[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return append([]byte(nil), b...), nil
}

func (r *memoryBlobRepo) Put(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[key] = append([]byte(nil), data...)
	return nil
}
