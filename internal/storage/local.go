package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalService stores receipt images on the local filesystem. The server
// exposes the directory under /uploads, so returned URLs stay resolvable.
type LocalService struct {
	dir     string
	baseURL string
}

func NewLocalService(dir, baseURL string) (*LocalService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalService{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *LocalService) Store(ctx context.Context, r io.Reader, size int64, contentType string) (string, error) {
	name := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create imagen file: %w", err)
	}
	_, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("write imagen file: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("close imagen file: %w", closeErr)
	}

	return s.baseURL + "/uploads/" + name, nil
}

var _ Service = (*LocalService)(nil)
