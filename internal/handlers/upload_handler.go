package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/schoolsync/student-service/internal/utils"
)

// maxUploadSize caps photo uploads at 5 MiB.
const maxUploadSize = 5 << 20

var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler stores uploaded photos on local disk under a random name
// and serves deletion by name. Files are served statically by the router.
type UploadHandler struct {
	BaseHandler
	uploadDir string
}

func NewUploadHandler(uploadDir string, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		uploadDir:   uploadDir,
	}
}

// UploadPhoto accepts one multipart file under the "photo" field.
func (h *UploadHandler) UploadPhoto(c *gin.Context) {
	h.LogRequest(c, "Uploading photo")

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "photo file is required"})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "file exceeds the 5MB limit"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "unsupported file type"})
		return
	}

	// A random name prevents collisions and path traversal via the
	// client-supplied filename.
	filename := uuid.New().String() + ext
	dst := filepath.Join(h.uploadDir, filename)

	if err := c.SaveUploadedFile(file, dst); err != nil {
		h.LogError(c, "failed to save upload", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to store file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "file uploaded",
		"photo":   fmt.Sprintf("/uploads/%s", filename),
	})
}

// DeletePhoto removes a stored file by name.
func (h *UploadHandler) DeletePhoto(c *gin.Context) {
	h.LogRequest(c, "Deleting photo")

	name := filepath.Base(c.Param("filename"))
	if name == "." || name == "/" || name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid filename"})
		return
	}

	path := filepath.Join(h.uploadDir, name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, ErrorResponse{Message: "file not found"})
			return
		}
		h.LogError(c, "failed to delete upload", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "failed to delete file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}
