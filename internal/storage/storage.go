package storage

import (
	"context"
	"io"
)

// Service stores a receipt image and returns a durable URL for it.
// Implementations are interchangeable; callers persist the URL and never
// inspect it.
type Service interface {
	Store(ctx context.Context, r io.Reader, size int64, contentType string) (string, error)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	default:
		return ".jpg"
	}
}
