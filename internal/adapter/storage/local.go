package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sanjaykhatri/induction-backend/internal/config"
	"github.com/sanjaykhatri/induction-backend/internal/domain"
)

// LocalStore implements domain.FileStore on the local filesystem. Stored
// keys resolve to public URLs by joining the configured base URL, so the
// serving host can change without touching stored rows.
type LocalStore struct {
	basePath      string
	publicBaseURL string
}

// NewLocalStore creates the storage directory if needed.
func NewLocalStore(cfg config.StorageConfig) (*LocalStore, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./storage"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		basePath:      basePath,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, r io.Reader) (string, error) {
	if key == "" {
		return "", errors.New("empty key")
	}
	dst := filepath.Join(s.basePath, filepath.Clean(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return key, nil
}

func (s *LocalStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicBaseURL + "/" + strings.TrimLeft(filepath.ToSlash(key), "/")
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.basePath, filepath.Clean(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

var _ domain.FileStore = (*LocalStore)(nil)
