package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/semmidev/pgvault/internal/domain"
)

// LocalSink stores artifacts on the local filesystem, mainly for
// development. Metadata has nowhere to live on a plain filesystem and
// is dropped.
type LocalSink struct {
	basePath string
}

func NewLocal(basePath string) (*LocalSink, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	return &LocalSink{basePath: basePath}, nil
}

func (l *LocalSink) Put(ctx context.Context, key string, body []byte, meta domain.Metadata) error {
	destPath := filepath.Join(l.basePath, key)

	if err := os.WriteFile(destPath, body, 0644); err != nil {
		return &domain.StorageError{Op: "put", Cause: fmt.Errorf("write file: %w", err)}
	}

	return nil
}

// List returns up to limit file names starting with the given prefix,
// in name order.
func (l *LocalSink) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, &domain.StorageError{Op: "list", Cause: fmt.Errorf("read directory: %w", err)}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		files = append(files, entry.Name())
		if len(files) == limit {
			break
		}
	}

	return files, nil
}

// Path returns where a stored artifact lives on disk.
func (l *LocalSink) Path(key string) string {
	return filepath.Join(l.basePath, key)
}
