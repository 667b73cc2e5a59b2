package domain

import (
	"context"
	"io"
)

// BlobWriter uploads data to object storage. Implemented by the S3 scan
// archiver backend.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}
