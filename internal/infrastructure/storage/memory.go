package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	uploadapp "github.com/nasiya/backend/internal/application/upload"
)

// MemoryObjectStorage is an in-process ObjectStorage used for tests and
// local development without an S3 backend.
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryObjectStorage creates an empty in-memory object storage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string]memoryObject),
	}
}

// Ensure MemoryObjectStorage implements ObjectStorage
var _ uploadapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Put stores an object in memory
func (s *MemoryObjectStorage) Put(ctx context.Context, storageKey string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[storageKey] = memoryObject{data: buf, contentType: contentType}
	return nil
}

// Get returns a stored object
func (s *MemoryObjectStorage) Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error) {
	s.mu.RLock()
	obj, ok := s.objects[storageKey]
	s.mu.RUnlock()

	if !ok {
		return nil, "", uploadapp.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), obj.contentType, nil
}

// Delete removes a stored object
func (s *MemoryObjectStorage) Delete(ctx context.Context, storageKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// Exists checks if an object is stored
func (s *MemoryObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// PublicURL returns a path-style URL for a stored object
func (s *MemoryObjectStorage) PublicURL(storageKey string) string {
	return "/api/v1/uploads/" + storageKey
}
