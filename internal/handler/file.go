package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/templui/fileshare/internal/flash"
	"github.com/templui/fileshare/internal/service"
	"github.com/templui/fileshare/internal/ui/pages"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.TooLarge(w, r)
		case errors.Is(err, http.ErrMissingFile):
			flash.Add(w, r, flash.Error, "No file selected!")
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			slog.Warn("failed to read upload", "error", err)
			flash.Add(w, r, flash.Error, msgGenericError)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		}
		return
	}
	defer func() {
		closeErr := file.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	uploaded, err := h.fileService.Upload(r.Context(), header.Filename, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoFileSelected):
			flash.Add(w, r, flash.Error, "No file selected!")
		case errors.Is(err, service.ErrInvalidFilename):
			flash.Add(w, r, flash.Error, "Invalid file name!")
		case errors.Is(err, service.ErrFileTooLarge):
			h.TooLarge(w, r)
			return
		default:
			slog.Error("failed to upload file", "error", err, "filename", header.Filename)
			flash.Add(w, r, flash.Error, msgGenericError)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	flash.Add(w, r, flash.Success, fmt.Sprintf("%s uploaded successfully!", uploaded.Name))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// TooLarge answers uploads over the size cap
func (h *FileHandler) TooLarge(w http.ResponseWriter, r *http.Request) {
	slog.Warn("upload rejected, too large", "content_length", r.ContentLength, "limit", h.fileService.MaxUploadSize())
	flash.Add(w, r, flash.Error, fmt.Sprintf("File too large! Maximum size is %s.", pages.HumanBytes(h.fileService.MaxUploadSize())))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	rc, info, err := h.fileService.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(w, r)
			return
		}
		slog.Error("failed to open file", "error", err, "name", name)
		ServerError(w, r)
		return
	}
	defer func() {
		closeErr := rc.Close()
		if closeErr != nil {
			slog.Error("failed to close file", "error", closeErr)
		}
	}()

	contentType := mime.TypeByExtension(filepath.Ext(info.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := w.Header()
	header.Set("Content-Type", contentType)
	header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": info.Name}))
	if info.Size >= 0 {
		header.Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}

	_, err = io.Copy(w, rc)
	if err != nil {
		slog.Warn("download interrupted", "error", err, "name", name)
	}
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	deleted, err := h.fileService.Delete(r.Context(), name)
	switch {
	case err != nil:
		slog.Error("failed to delete file", "error", err, "name", name)
		flash.Add(w, r, flash.Error, msgGenericError)
	case deleted:
		flash.Add(w, r, flash.Success, fmt.Sprintf("%s deleted successfully!", name))
	default:
		flash.Add(w, r, flash.Info, fmt.Sprintf("%s was not found.", name))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
