package imaging

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/solestack/catalog-service/internal/blob"
	"github.com/solestack/catalog-service/internal/pkg/logger"
)

// maxFetchBytes caps a remote image body. Anything larger than a stored
// product image could ever be is treated as a miss.
const maxFetchBytes = 32 << 20

// Acquirer resolves a product's image reference into raw bytes through an
// ordered fallback chain: remote fetch first, then a direct read from the
// images bucket when the URL encodes one of our own keys. Every failure
// degrades to "unavailable"; the catalog must render with a placeholder
// rather than abort.
//
// The direct-bucket fallback exists because public object-storage URLs may
// be slow, expired, or blocked from the environment generating the
// document.
type Acquirer struct {
	client *http.Client
	store  blob.Store
	bucket string
	logger logger.ZapLogger
}

func NewAcquirer(store blob.Store, imagesBucket string, fetchTimeout time.Duration, log logger.ZapLogger) *Acquirer {
	return &Acquirer{
		client: &http.Client{Timeout: fetchTimeout},
		store:  store,
		bucket: imagesBucket,
		logger: log,
	}
}

// Acquire returns the image bytes and true, or nil and false when the
// reference is empty or every strategy missed. It never returns an error.
func (a *Acquirer) Acquire(ctx context.Context, ref string) ([]byte, bool) {
	if strings.TrimSpace(ref) == "" {
		return nil, false
	}

	if data, ok := a.fetch(ctx, ref); ok {
		return data, true
	}

	if key, ok := a.extractKey(ref); ok {
		data, err := a.store.Get(ctx, a.bucket, key)
		if err == nil {
			return data, true
		}
		a.logger.Debug("blob fallback miss", zap.String("key", key), zap.Error(err))
	}

	a.logger.Warn("image unavailable", zap.String("ref", ref))
	return nil, false
}

func (a *Acquirer) fetch(ctx context.Context, rawURL string) ([]byte, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false
	}

	resp, err := a.client.Do(req)
	if err != nil {
		// Timeouts and transport errors are misses, the chain continues.
		a.logger.Debug("image fetch miss", zap.String("url", rawURL), zap.Error(err))
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		a.logger.Debug("image fetch non-success", zap.String("url", rawURL), zap.Int("status", resp.StatusCode))
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// extractKey recognizes URLs that point into our own images bucket, either
// as a plain path segment ("/uploads/<key>") or percent-encoded
// ("uploads%2F<key>"), and recovers the storage key.
func (a *Acquirer) extractKey(ref string) (string, bool) {
	for _, marker := range []string{"/" + a.bucket + "/", a.bucket + "%2F", a.bucket + "%2f"} {
		idx := strings.Index(ref, marker)
		if idx < 0 {
			continue
		}
		key := ref[idx+len(marker):]
		if cut := strings.IndexAny(key, "?#&"); cut >= 0 {
			key = key[:cut]
		}
		if decoded, err := url.PathUnescape(key); err == nil {
			key = decoded
		}
		if key != "" {
			return key, true
		}
	}
	return "", false
}
