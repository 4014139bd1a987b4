package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"fitness-intake-backend/internal/models"
	"fitness-intake-backend/internal/submission"
	"fitness-intake-backend/internal/validation"
)

type UploadHandler struct {
	storage submission.Uploader
}

func NewUploadHandler(storage submission.Uploader) *UploadHandler {
	return &UploadHandler{storage: storage}
}

const maxUploadBytes = 10 << 20

var uploadRules = map[string]validation.FileOptions{
	"images":  {MaxSizeMB: 5, AllowedTypes: []string{"image/*"}},
	"reports": {MaxSizeMB: 10, AllowedTypes: []string{"pdf", "image/*"}},
}

// Upload pushes one multipart file to object storage and returns the public
// URL. Files are uploaded one at a time, per user action; the client stores
// the URL in its draft.
func (h *UploadHandler) Upload(c *gin.Context) {
	folder := c.DefaultPostForm("folder", "images")
	rules, ok := uploadRules[folder]
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid folder, must be \"images\" or \"reports\"",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "missing file",
			Message: err.Error(),
		})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
			Error: "file too large",
		})
		return
	}

	if msg := validation.File(fileHeader.Filename, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"), rules); msg != "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: msg})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to open file",
			Message: err.Error(),
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to read file",
			Message: err.Error(),
		})
		return
	}

	filename := fmt.Sprintf("%d-%s%s", time.Now().Unix(), submission.StorageToken(),
		filepath.Ext(fileHeader.Filename))

	fileURL, err := h.storage.Upload(c.Request.Context(), folder, filename, data)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "failed to upload file",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{
		FileURL:  fileURL,
		Filename: filename,
		Size:     fileHeader.Size,
	})
}
