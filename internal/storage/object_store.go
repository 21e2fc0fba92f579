package storage

import (
	"context"
	"io"
)

// ObjectStore is the photo asset contract. Upload must reject writes to an
// existing key so that derived-key uniqueness can never silently overwrite
// another record's photo.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	PublicURL(key string) string
	DeleteByPublicURL(ctx context.Context, publicURL string) error
}
