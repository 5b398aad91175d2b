package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/templui/fileshare/internal/model"
	"github.com/templui/fileshare/internal/validation"
)

// stagingDir holds uploads in flight. Sanitized names can never start with
// a dot, so it cannot collide with a stored file, and List skips directories.
const stagingDir = ".staging"

// LocalStorage keeps blobs as plain files in one directory
type LocalStorage struct {
	dir     string
	staging string
	root    *os.Root
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	staging := filepath.Join(dir, stagingDir)
	err := os.MkdirAll(staging, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload directory: %w", err)
	}

	return &LocalStorage{
		dir:     dir,
		staging: staging,
		root:    root,
	}, nil
}

func (s *LocalStorage) Close() error {
	return s.root.Close()
}

func (s *LocalStorage) List(ctx context.Context) ([]*model.File, error) {
	entries, err := fs.ReadDir(s.root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read upload directory: %w", err)
	}

	files := make([]*model.File, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to stat %s: %w", entry.Name(), err)
		}

		files = append(files, &model.File{
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// Save streams r into a staging file and moves it over the target only once
// the whole body has been read.
func (s *LocalStorage) Save(ctx context.Context, name string, r io.Reader) (int64, error) {
	if !validation.IsSafeFilename(name) {
		return 0, ErrInvalidName
	}

	tmp, err := os.CreateTemp(s.staging, "upload-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create staging file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if committed {
			return
		}
		removeErr := os.Remove(tmpPath)
		if removeErr != nil && !errors.Is(removeErr, fs.ErrNotExist) {
			slog.Error("failed to remove staging file", "error", removeErr, "path", tmpPath)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		_ = tmp.Close()
		return n, fmt.Errorf("failed to write %s: %w", name, err)
	}

	err = tmp.Chmod(0o644)
	if err != nil {
		_ = tmp.Close()
		return n, fmt.Errorf("failed to set permissions: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		return n, fmt.Errorf("failed to close staging file: %w", err)
	}

	// The client may have gone away while we were copying
	err = ctx.Err()
	if err != nil {
		return n, err
	}

	err = atomic.ReplaceFile(tmpPath, filepath.Join(s.dir, name))
	if err != nil {
		return n, fmt.Errorf("failed to store %s: %w", name, err)
	}
	committed = true

	return n, nil
}

func (s *LocalStorage) Open(ctx context.Context, name string) (io.ReadCloser, *model.File, error) {
	if !validation.IsSafeFilename(name) {
		return nil, nil, ErrNotFound
	}

	f, err := s.root.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", name, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, nil, ErrNotFound
	}

	return f, &model.File{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

func (s *LocalStorage) Delete(ctx context.Context, name string) (bool, error) {
	if !validation.IsSafeFilename(name) {
		return false, nil
	}

	info, err := s.root.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}

	err = s.root.Remove(name)
	if err != nil {
		// Lost a race with another delete
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", name, err)
	}

	return true, nil
}
