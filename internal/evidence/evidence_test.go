package evidence

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appguard/internal/access"
	dErrors "appguard/pkg/domain-errors"
	"appguard/pkg/requestcontext"
	"appguard/pkg/testutil"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"screenshot.png", "screenshot.png"},
		{"my evidence file.png", "my_evidence_file.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"weird$#@!chars.txt", "weirdchars.txt"},
		{"...", "evidence"},
		{"", "evidence"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.in), "input %q", tc.in)
	}
}

func TestUploadNamesFilesByEpochMillis(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	dir := t.TempDir()
	svc := New(NewLocalStore(dir), WithLogger(quietLogger()))

	payload := []byte("fake png bytes")
	name, err := svc.Upload(ctx, "screenshot.png", bytes.NewReader(payload), int64(len(payload)), "image/png")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d_screenshot.png", now.UnixMilli()), name)

	written, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestUploadRejectsEmptyAndOversized(t *testing.T) {
	ctx := context.Background()
	svc := New(NewLocalStore(t.TempDir()), WithLogger(quietLogger()), WithMaxBytes(10))

	_, err := svc.Upload(ctx, "empty.txt", bytes.NewReader(nil), 0, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = svc.Upload(ctx, "big.txt", strings.NewReader("0123456789AB"), 12, "")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

// newUploadRouter mounts the upload route behind a stub auth context, the
// same shape the real middleware stack produces.
func newUploadRouter(t *testing.T, dir string) http.Handler {
	t.Helper()

	svc := New(NewLocalStore(dir), WithLogger(quietLogger()))
	h := NewHandler(svc, quietLogger())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()
			if role := req.Header.Get("X-Test-Role"); role != "" {
				ctx = requestcontext.WithIdentity(ctx, "alice")
				ctx = requestcontext.WithRole(ctx, role)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	h.Register(r)
	return r
}

func multipartUpload(t *testing.T, fieldName, fileName, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/citizen/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadEndpoint(t *testing.T) {
	dir := t.TempDir()
	router := newUploadRouter(t, dir)

	t.Run("citizen uploads evidence", func(t *testing.T) {
		req := multipartUpload(t, "file", "proof.png", "payload")
		req.Header.Set("X-Test-Role", string(access.RoleCitizen))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[struct {
			Success  bool   `json:"success"`
			FileName string `json:"fileName"`
		}](t, rr)
		assert.True(t, resp.Success)
		assert.True(t, strings.HasSuffix(resp.FileName, "_proof.png"), "got %q", resp.FileName)

		_, err := os.Stat(filepath.Join(dir, resp.FileName))
		assert.NoError(t, err)
	})

	t.Run("missing file field is a bad request", func(t *testing.T) {
		req := multipartUpload(t, "attachment", "proof.png", "payload")
		req.Header.Set("X-Test-Role", string(access.RoleCitizen))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "bad_request")
	})

	t.Run("investigator may not upload", func(t *testing.T) {
		req := multipartUpload(t, "file", "proof.png", "payload")
		req.Header.Set("X-Test-Role", string(access.RoleInvestigator))
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("anonymous may not upload", func(t *testing.T) {
		rr := testutil.DoRequest(router, multipartUpload(t, "file", "proof.png", "payload"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})
}
