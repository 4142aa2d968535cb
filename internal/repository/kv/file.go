package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"storefront/internal/domain"
)

type fileStore struct {
	dir   string
	quota int
}

// NewFile stores each key as one file under dir. Writes go through a temporary
// file and a rename so a crash never leaves a half-written value behind.
func NewFile(dir string, quota int) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &fileStore{dir: dir, quota: quota}, nil
}

func (s *fileStore) Get(_ context.Context, key string) (string, error) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(b), nil
}

func (s *fileStore) Set(_ context.Context, key, value string) error {
	if s.quota > 0 && len(value) > s.quota {
		return fmt.Errorf("set %q (%d bytes): %w", key, len(value), domain.ErrQuotaExceeded)
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path(key))
}

func (s *fileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *fileStore) Ping(context.Context) error {
	_, err := os.Stat(s.dir)
	return err
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}
