// Package storage provides profile image storage backends.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/beamworkflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ImageStore stores and retrieves profile images by file name.
type ImageStore interface {
	// Save writes the image content under the given file name,
	// replacing any existing object.
	Save(ctx context.Context, fileName string, content io.Reader) error

	// Open returns a reader for the stored image. Implementations
	// return shared.ErrNotFound when the file does not exist.
	Open(ctx context.Context, fileName string) (io.ReadCloser, error)

	// Delete removes the stored image. Deleting a missing file is
	// not an error.
	Delete(ctx context.Context, fileName string) error
}

// New selects an image store backend from configuration.
func New(cfg *config.StorageConfig, logger *zap.Logger) (ImageStore, error) {
	switch cfg.Driver {
	case "local":
		return NewLocalImageStore(cfg.LocalDir)
	case "s3":
		return NewS3ImageStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
