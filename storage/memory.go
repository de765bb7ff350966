package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"mediacatalog/models"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore is a map-backed BlobStore for tests. PutErr and DeleteErr, when
// set, are returned by the corresponding operations to simulate store
// failures; deleteCalls records every Delete invocation.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject

	PutErr    error
	DeleteErr error

	deleteCalls []string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]memoryObject)}
}

func (s *MemoryStore) EnsureContainer(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, data []byte, contentType string) (PutResult, error) {
	if s.PutErr != nil {
		return PutResult{}, s.PutErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = memoryObject{data: buf, contentType: contentType}

	sum := sha256.Sum256(data)
	return PutResult{
		URL:          "memory://" + key,
		IntegrityTag: hex.EncodeToString(sum[:]),
	}, nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	s.deleteCalls = append(s.deleteCalls, key)
	s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *MemoryStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[key]; !ok {
		return "", models.NewCatalogError(models.ErrNotFound,
			fmt.Sprintf("object %q does not exist", key))
	}
	return fmt.Sprintf("memory://%s?exp=%d", key, time.Now().Add(ttl).Unix()), nil
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Get returns the stored bytes and content type for a key.
func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

// DeleteCalls returns the keys Delete was called with, in order.
func (s *MemoryStore) DeleteCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deleteCalls...)
}
