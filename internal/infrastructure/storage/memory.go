// Package storage provides object storage implementations for document blobs.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"time"

	documentapp "github.com/GaudenzB/blueearth-contracts/internal/application/document"
)

// ErrObjectNotFound is returned when a key has no stored object
var ErrObjectNotFound = errors.New("object not found")

// MemoryObjectStorage is an in-memory ObjectStorage for development and tests
type MemoryObjectStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	BaseURL string
}

// NewMemoryObjectStorage creates a new MemoryObjectStorage
func NewMemoryObjectStorage() *MemoryObjectStorage {
	return &MemoryObjectStorage{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
		BaseURL: "https://storage.example.com",
	}
}

// Ensure MemoryObjectStorage implements ObjectStorage
var _ documentapp.ObjectStorage = (*MemoryObjectStorage)(nil)

// Put stores an object under the given key
func (s *MemoryObjectStorage) Put(_ context.Context, key string, body io.Reader, _ int64, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

// Get retrieves an object; the caller closes the returned reader
func (s *MemoryObjectStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.objects[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes an object
func (s *MemoryObjectStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	delete(s.types, key)
	return nil
}

// Exists reports whether an object is present
func (s *MemoryObjectStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok, nil
}

// PresignDownload returns a synthetic download URL for an object
func (s *MemoryObjectStorage) PresignDownload(_ context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	if key == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	s.mu.RLock()
	_, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return "", time.Time{}, ErrObjectNotFound
	}

	expiresAt := time.Now().Add(expiresIn)
	return s.BaseURL + "/download/" + key + "?expires=" + expiresAt.Format(time.RFC3339), expiresAt, nil
}

// ContentType returns the stored content type for a key (testing helper)
func (s *MemoryObjectStorage) ContentType(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.types[key]
}
