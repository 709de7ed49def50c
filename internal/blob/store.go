// Package blob abstracts key-addressed byte storage with public URL
// retrieval. Backends are interchangeable (local disk, object storage); the
// services only depend on this interface.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store is the byte-storage collaborator. Blobs are immutable once written:
// Put with an existing key must fail rather than overwrite.
type Store interface {
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
	// Get returns the payload, or ErrNotFound on a miss.
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Delete is best-effort cleanup; callers log failures and move on.
	Delete(ctx context.Context, bucket, key string) error
	// PublicURL returns a retrievable URL for the blob. It does not check
	// existence.
	PublicURL(bucket, key string) string
}

// ErrNotFound is returned by Get on a missing key.
var ErrNotFound = fmt.Errorf("blob not found")

// ImageKey produces a collision-resistant key for an uploaded product
// image. Millisecond timestamp plus a uuid suffix keeps concurrent uploads
// from colliding without any shared state.
func ImageKey(ext string) string {
	return fmt.Sprintf("product-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
}

// DocumentKey produces the filename for a generated catalog document. Same
// timestamp-plus-randomness scheme as ImageKey, so concurrent generations
// cannot collide.
func DocumentKey() string {
	return fmt.Sprintf("catalog-%d-%s.pdf", time.Now().UnixMilli(), uuid.New().String())
}
