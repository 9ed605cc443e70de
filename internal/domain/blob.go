package domain

import (
	"context"
	"io"
	"time"
)

// BlobInfo describes a stored object.
type BlobInfo struct {
	Path         string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// BlobWriter uploads listing media to object storage.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// BlobReader retrieves listing media from object storage.
type BlobReader interface {
	Get(ctx context.Context, path string) (io.ReadCloser, string, error)
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

// BlobDeleter removes listing media from object storage.
type BlobDeleter interface {
	Delete(ctx context.Context, path string) error
}
