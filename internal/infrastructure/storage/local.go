package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beamworkflow/backend/internal/domain/shared"
)

// LocalImageStore keeps images as plain files under a base directory.
type LocalImageStore struct {
	baseDir string
}

// NewLocalImageStore creates the base directory if needed.
func NewLocalImageStore(baseDir string) (*LocalImageStore, error) {
	if baseDir == "" {
		return nil, errors.New("storage base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalImageStore{baseDir: baseDir}, nil
}

// Save writes the image content to disk, replacing any existing file.
func (s *LocalImageStore) Save(ctx context.Context, fileName string, content io.Reader) error {
	path, err := s.resolve(fileName)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	return nil
}

// Open returns a reader for the stored image.
func (s *LocalImageStore) Open(ctx context.Context, fileName string) (io.ReadCloser, error) {
	path, err := s.resolve(fileName)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	return file, nil
}

// Delete removes the stored image. A missing file is not an error.
func (s *LocalImageStore) Delete(ctx context.Context, fileName string) error {
	path, err := s.resolve(fileName)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete image file: %w", err)
	}
	return nil
}

// resolve maps a file name to a path inside the base directory and
// rejects names that would escape it.
func (s *LocalImageStore) resolve(fileName string) (string, error) {
	if fileName == "" {
		return "", errors.New("file name is required")
	}
	clean := filepath.Clean(fileName)
	if clean != filepath.Base(clean) || strings.HasPrefix(clean, ".") {
		return "", fmt.Errorf("invalid image file name %q", fileName)
	}
	return filepath.Join(s.baseDir, clean), nil
}

// Ensure LocalImageStore implements ImageStore
var _ ImageStore = (*LocalImageStore)(nil)
