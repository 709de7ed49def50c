// Package memstore keeps blobs in process memory. Used by tests and usable
// for ephemeral single-node deployments.
package memstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/solestack/catalog-service/internal/blob"
)

type Store struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	baseURL string
}

func New(baseURL string) *Store {
	return &Store{
		blobs:   make(map[string][]byte),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

var _ blob.Store = (*Store)(nil)

func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := bucket + "/" + key
	if _, ok := s.blobs[k]; ok {
		return fmt.Errorf("blob %s already exists", k)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[k] = cp
	return nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[bucket+"/"+key]
	if !ok {
		return nil, blob.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, bucket+"/"+key)
	return nil
}

func (s *Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, key)
}

// Len reports how many blobs are stored, across all buckets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
