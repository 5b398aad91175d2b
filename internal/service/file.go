package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/templui/fileshare/internal/model"
	"github.com/templui/fileshare/internal/storage"
	"github.com/templui/fileshare/internal/validation"
)

var (
	ErrNoFileSelected  = errors.New("no file selected")
	ErrInvalidFilename = errors.New("invalid file name")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNotFound        = errors.New("file not found")
)

// FileService manages the shared file pool. Files have no owner: every
// authenticated user sees and may remove all of them.
type FileService struct {
	storage       storage.Storage
	maxUploadSize int64
}

func NewFileService(storage storage.Storage, maxUploadSize int64) *FileService {
	return &FileService{
		storage:       storage,
		maxUploadSize: maxUploadSize,
	}
}

func (s *FileService) MaxUploadSize() int64 {
	return s.maxUploadSize
}

func (s *FileService) List(ctx context.Context) ([]*model.File, error) {
	files, err := s.storage.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

// Upload stores r under the sanitized form of rawName, replacing any file
// of that name. size is the client-declared length, or -1 when unknown.
func (s *FileService) Upload(ctx context.Context, rawName string, r io.Reader, size int64) (*model.File, error) {
	if rawName == "" {
		return nil, ErrNoFileSelected
	}

	name := validation.SafeFilename(rawName)
	if name == "" {
		return nil, ErrInvalidFilename
	}

	if size > s.maxUploadSize {
		return nil, ErrFileTooLarge
	}

	n, err := s.storage.Save(ctx, name, &capReader{r: r, remaining: s.maxUploadSize})
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			return nil, ErrFileTooLarge
		}
		if errors.Is(err, storage.ErrInvalidName) {
			return nil, ErrInvalidFilename
		}
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	slog.Info("file uploaded", "name", name, "size", n)

	return &model.File{
		Name:    name,
		Size:    n,
		ModTime: time.Now(),
	}, nil
}

// Open returns a reader for name. Names that are not already in sanitized
// form are reported as missing without consulting storage.
func (s *FileService) Open(ctx context.Context, name string) (io.ReadCloser, *model.File, error) {
	if !validation.IsSafeFilename(name) {
		return nil, nil, ErrNotFound
	}

	rc, file, err := s.storage.Open(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return rc, file, nil
}

// Delete removes name and reports whether it existed
func (s *FileService) Delete(ctx context.Context, name string) (bool, error) {
	if !validation.IsSafeFilename(name) {
		return false, nil
	}

	deleted, err := s.storage.Delete(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	if deleted {
		slog.Info("file deleted", "name", name)
	}
	return deleted, nil
}

// capReader fails with ErrFileTooLarge once more than remaining bytes are read
type capReader struct {
	r         io.Reader
	remaining int64
}

func (c *capReader) Read(p []byte) (int, error) {
	if c.remaining < 0 {
		return 0, ErrFileTooLarge
	}

	// One byte past the cap is enough to tell "exactly at limit" from "over"
	if int64(len(p)) > c.remaining+1 {
		p = p[:c.remaining+1]
	}

	n, err := c.r.Read(p)
	c.remaining -= int64(n)
	if c.remaining < 0 {
		return n, ErrFileTooLarge
	}
	return n, err
}
