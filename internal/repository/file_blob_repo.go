package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

type fileBlobRepo struct{ dir string }

// NewFileBlobRepository stores each key as <dir>/<key>.json.
func NewFileBlobRepository(dir string) StateBlobRepository {
	return &fileBlobRepo{dir: dir}
}

func (r *fileBlobRepo) path(key string) string {
	return filepath.Join(r.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (r *fileBlobRepo) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	return b, err
}

// Put writes to a temp file and renames it over the target so a crash never
// leaves a half-written blob behind.
func (r *fileBlobRepo) Put(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("file store: create dir: %w", err)
	}
	target := r.path(key)
	tmp, err := os.CreateTemp(r.dir, filepath.Base(target)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}
