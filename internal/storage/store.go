// Package storage keeps uploaded photos in an object store.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"edeon_enerji/internal/domain"
)

// ObjectStore saves objects under slash separated keys.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

// LocalStore is an ObjectStore on a directory that is served at
// publicBase.
type LocalStore struct {
	dir        string
	publicBase string
}

// NewLocalStore creates dir when missing.
func NewLocalStore(dir, publicBase string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

// Dir is the root directory of the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}
	return s.publicBase + "/" + key, nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("object %s: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// path maps key below dir, rejecting keys that escape it.
func (s *LocalStore) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", domain.NewValidationError("key", "Geçersiz dosya yolu")
	}
	return filepath.Join(s.dir, filepath.FromSlash(clean)), nil
}
