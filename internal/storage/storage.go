package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/templui/fileshare/internal/config"
	"github.com/templui/fileshare/internal/model"
)

var (
	ErrNotFound    = errors.New("file not found")
	ErrInvalidName = errors.New("invalid file name")
)

// Storage is a flat namespace of blobs addressed by sanitized filename.
// Implementations never resolve a name outside their root and never leave a
// partially written blob under its final name.
type Storage interface {
	// List returns the regular files directly in the root, in backend order
	List(ctx context.Context) ([]*model.File, error)

	// Save writes r under name, replacing any existing blob (last writer wins)
	Save(ctx context.Context, name string, r io.Reader) (int64, error)

	// Open streams a blob back; ErrNotFound if it does not exist
	Open(ctx context.Context, name string) (io.ReadCloser, *model.File, error)

	// Delete removes a blob and reports whether it existed
	Delete(ctx context.Context, name string) (bool, error)
}

// New creates the storage backend selected by STORAGE_DRIVER
func New(ctx context.Context, c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case cfg.StorageLocal, "":
		slog.Info("initializing local storage", "dir", c.UploadDir)
		return NewLocalStorage(c.UploadDir)
	case cfg.StorageS3:
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
			"prefix", c.S3Prefix,
		)
		return NewS3Storage(ctx, S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
			Prefix:    c.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
