package domain

import (
	"context"
)

// Metadata travels with an uploaded object.
type Metadata struct {
	ContentType string
	Fields      map[string]string
}

// Sink is the object-storage destination for artifacts. Implementations
// wrap whichever backend is configured (S3, Google Drive, local disk).
type Sink interface {
	Put(ctx context.Context, key string, body []byte, meta Metadata) error
	List(ctx context.Context, prefix string, limit int) ([]string, error)
}
