package objectstore

import (
	"context"
	"io"
)

// Store abstrae el object storage de imágenes (MinIO en producción,
// in-memory en dev/tests). Upload es fallible; PublicURL es resolución
// pura de key -> URL estable.
type Store interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}
