package handler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/templui/fileshare/internal/flash"
	"github.com/templui/fileshare/internal/model"
	"github.com/templui/fileshare/internal/service"
	"github.com/templui/fileshare/internal/ui"
	"github.com/templui/fileshare/internal/ui/pages"
)

const msgGenericError = "Something went wrong. Please try again."

type HomeHandler struct {
	fileService *service.FileService
}

func NewHomeHandler(fileService *service.FileService) *HomeHandler {
	return &HomeHandler{
		fileService: fileService,
	}
}

// Home lists the shared files next to the upload form
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	messages := flash.Pop(w, r)

	files, err := h.fileService.List(r.Context())
	if err != nil {
		slog.Error("failed to list files", "error", err)
		messages = append(messages, flash.Message{Kind: flash.Error, Text: msgGenericError})
	}

	slices.SortFunc(files, func(a, b *model.File) int {
		return strings.Compare(a.Name, b.Name)
	})

	ui.Render(w, r, pages.Home(pages.HomeData{
		Page:          pages.NewPage(r.Context(), "Home", messages),
		Files:         files,
		MaxUploadSize: h.fileService.MaxUploadSize(),
	}))
}

func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	NotFound(w, r)
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusNotFound, pages.NotFound(pages.NewPage(r.Context(), "Not Found", nil)))
}

func ServerError(w http.ResponseWriter, r *http.Request) {
	ui.RenderStatus(w, r, http.StatusInternalServerError, pages.ServerError(pages.NewPage(r.Context(), "Error", nil)))
}
