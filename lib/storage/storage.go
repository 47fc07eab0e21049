package storage

import (
	"context"
	"time"
)

// DefaultSignedURLTTL is how long generated download links stay valid
const DefaultSignedURLTTL = time.Hour

// ObjectStore stores binary payloads under string keys. The portal never
// exposes keys directly; file downloads always go through time-limited
// signed URLs.
type ObjectStore interface {
	Upload(ctx context.Context, key string, payload []byte, contentType string) error
	Remove(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	PublicURL(key string) string
	List(ctx context.Context, prefix string) ([]string, error)
}
