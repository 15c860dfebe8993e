package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pressroom-backend/internal/domains/publish"
	"pressroom-backend/internal/infrastructure/storage"
	"pressroom-backend/internal/shared/response"
)

// MediaHandler stages featured images in object storage. The returned
// key is what PublishRequest.FeaturedImageKey expects.
type MediaHandler struct {
	storage   *storage.MinIOStorage
	processor *storage.ImageProcessor
}

func NewMediaHandler(store *storage.MinIOStorage, processor *storage.ImageProcessor) *MediaHandler {
	return &MediaHandler{storage: store, processor: processor}
}

func (h *MediaHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		response.ServiceUnavailable(c, publish.GetErrorMessage(publish.ErrStorageDisabled))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "cannot read uploaded file")
		return
	}

	if err := h.processor.ValidateImage(data); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	key := "staging/" + uuid.New().String() + ext

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if _, err := h.storage.Upload(c.Request.Context(), key, data, contentType); err != nil {
		response.InternalServerError(c, "failed to stage image")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"key": key})
}

func (h *MediaHandler) Delete(c *gin.Context) {
	if h.storage == nil {
		response.ServiceUnavailable(c, publish.GetErrorMessage(publish.ErrStorageDisabled))
		return
	}

	key := c.Query("key")
	if key == "" || !strings.HasPrefix(key, "staging/") {
		response.BadRequest(c, "a staging key is required")
		return
	}

	if err := h.storage.Delete(c.Request.Context(), key); err != nil {
		response.InternalServerError(c, "failed to delete staged image")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
