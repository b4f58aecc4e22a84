package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jennilaluyan/connect-in-backend/internal/common"
)

var errInvalidPath = common.NewError(common.CodeValidation, "invalid storage path", nil)

// DiskStore keeps blobs under a single root directory. Stored references are
// slash-separated paths relative to that root.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) *DiskStore {
	return &DiskStore{root: root}
}

func (s *DiskStore) resolve(path string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(path))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", errInvalidPath
	}
	return filepath.Join(s.root, cleaned), nil
}

func (s *DiskStore) Save(ctx context.Context, path string, r io.Reader) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return common.NewError(common.CodeInternal, "failed to prepare storage directory", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to create blob", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(full)
		return common.NewError(common.CodeInternal, "failed to write blob", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(full)
		return common.NewError(common.CodeInternal, "failed to flush blob", err)
	}
	return nil
}

func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.NewError(common.CodeNotFound, "file not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to open blob", err)
	}
	return f, nil
}

func (s *DiskStore) Delete(ctx context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return common.NewError(common.CodeInternal, "failed to delete blob", err)
	}
	return nil
}

func (s *DiskStore) Exists(ctx context.Context, path string) bool {
	full, err := s.resolve(path)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(full)
	return statErr == nil
}
