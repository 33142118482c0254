package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newUploadTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	handler := NewUploadHandler(dir, testHandlerLogger())

	router := gin.New()
	router.POST("/upload", handler.UploadPhoto)
	router.DELETE("/upload/:filename", handler.DeletePhoto)
	return router, dir
}

func multipartPhoto(t *testing.T, filename string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("failed to build form: %v", err)
	}
	if _, err := part.Write([]byte("image bytes")); err != nil {
		t.Fatalf("failed to write form: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close form: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestUploadPhoto(t *testing.T) {
	router, dir := newUploadTestRouter(t)

	body, contentType := multipartPhoto(t, "portrait.png")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Photo string `json:"photo"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Photo, "/uploads/") {
		t.Fatalf("expected /uploads/ path, got %q", resp.Photo)
	}
	if !strings.HasSuffix(resp.Photo, ".png") {
		t.Errorf("expected .png extension preserved, got %q", resp.Photo)
	}

	stored := strings.TrimPrefix(resp.Photo, "/uploads/")
	if _, err := os.Stat(filepath.Join(dir, stored)); err != nil {
		t.Errorf("uploaded file not on disk: %v", err)
	}
}

func TestUploadPhoto_UnsupportedType(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	body, contentType := multipartPhoto(t, "notes.txt")
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDeletePhoto_NotFound(t *testing.T) {
	router, _ := newUploadTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/upload/missing.png", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
