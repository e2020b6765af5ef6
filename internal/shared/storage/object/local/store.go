package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tailor-backend/internal/shared/storage/object"
	"tailor-backend/internal/shared/util"
)

// Store implements object.Uploader on the local filesystem, for development
// and tests.
type Store struct {
	dir     string
	baseURL string
}

// New creates a local-disk uploader rooted at dir. Served URLs are formed
// under baseURL.
func New(dir, baseURL string) *Store {
	return &Store{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload copies a local file into the store directory and returns its URL.
func (s *Store) Upload(ctx context.Context, localPath string, destName string, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sanitized, err := util.SanitizeFileName(destName)
	if err != nil {
		return "", fmt.Errorf("sanitize dest name: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create store dir: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", localPath, err)
	}
	defer src.Close()

	destPath := filepath.Join(s.dir, sanitized)
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", destPath, err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("copy to %s: %w", destPath, err)
	}

	return s.baseURL + "/" + sanitized, nil
}

var _ object.Uploader = (*Store)(nil)
