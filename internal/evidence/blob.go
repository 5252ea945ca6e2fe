// Package evidence stores uploaded evidence files. Uploads are independent
// of report creation: the stored name is returned to the client, which passes
// it along in the report submission.
package evidence

import (
	"context"
	"io"
)

// BlobStore writes evidence payloads under a caller-chosen name.
type BlobStore interface {
	Put(ctx context.Context, name string, body io.Reader, size int64, contentType string) error
}
