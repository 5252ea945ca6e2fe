package evidence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/requestcontext"
)

// Service names and stores uploaded evidence files.
type Service struct {
	blobs    BlobStore
	maxBytes int64
	logger   *slog.Logger
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMaxBytes caps accepted upload sizes. Zero means no cap.
func WithMaxBytes(n int64) Option {
	return func(s *Service) { s.maxBytes = n }
}

func New(blobs BlobStore, opts ...Option) *Service {
	s := &Service{blobs: blobs, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Upload stores the payload under an epoch-millis-prefixed name derived from
// the original filename, and returns that stored name.
func (s *Service) Upload(ctx context.Context, originalName string, body io.Reader, size int64, contentType string) (string, error) {
	if size <= 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "file exceeds the %d byte limit", s.maxBytes)
	}

	name := fmt.Sprintf("%d_%s", requestcontext.Now(ctx).UnixMilli(), sanitizeFilename(originalName))
	if err := s.blobs.Put(ctx, name, body, size, contentType); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "evidence store unavailable")
	}

	s.logger.InfoContext(ctx, "evidence stored",
		"file_name", name,
		"size", size,
		"request_id", requestcontext.RequestID(ctx),
	)
	return name, nil
}

// sanitizeFilename strips directory components and anything outside a
// conservative character set, so the stored name is safe as both an object
// key and a filesystem entry.
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(strings.ReplaceAll(name, "\\", "/")))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "evidence"
	}
	return cleaned
}
