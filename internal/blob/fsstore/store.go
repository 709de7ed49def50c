// Package fsstore is a filesystem-backed blob store. Buckets are
// directories under a root; public URLs are built from a base URL that the
// HTTP server (or a reverse proxy) serves the root under.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/solestack/catalog-service/internal/blob"
)

type Store struct {
	root    string
	baseURL string
}

func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

var _ blob.Store = (*Store)(nil)

func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	path, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Immutability: refuse to overwrite an existing key.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	path, err := s.path(bucket, key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, blob.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	path, err := s.path(bucket, key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *Store) PublicURL(bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, bucket, key)
}

// path rejects keys that would escape the bucket directory.
func (s *Store) path(bucket, key string) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}
	cleaned := filepath.Clean(key)
	if cleaned != key || strings.Contains(key, "..") || filepath.IsAbs(key) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return filepath.Join(s.root, bucket, cleaned), nil
}
