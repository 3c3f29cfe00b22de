package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapcatalog/snapcatalog/internal/models"
	"github.com/snapcatalog/snapcatalog/internal/utils"
)

// maxImageBytes caps a single uploaded image at 10MB.
const maxImageBytes = 10 * 1024 * 1024

func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with an image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLUpload(w, r)
		return
	}

	// Handle multipart file upload
	h.handleFileUpload(w, r)
}

func (h *Handler) handleURLUpload(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	imageData, err := h.downloadImageFromURL(request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Extract filename from URL
	parts := strings.Split(request.ImageURL, "/")
	filename := parts[len(parts)-1]
	if filename == "" {
		filename = "image.jpg"
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	results := make([]*models.CatalogRecord, 0, 1)
	if record := h.catalogImage(r, imageData, filename); record != nil {
		results = append(results, record)
	}

	h.writeJSON(w, results)
}

func (h *Handler) handleFileUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, "Failed to parse upload: "+err.Error(), http.StatusBadRequest)
		return
	}

	files := uploadedFiles(r)
	if len(files) == 0 {
		h.writeError(w, "No files uploaded", http.StatusBadRequest)
		return
	}

	if err := h.ensureUploadsDir(); err != nil {
		h.writeError(w, "Failed to create uploads directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// One pipeline run per image, in upload order. A failed image is logged
	// and skipped; the rest of the batch proceeds.
	results := make([]*models.CatalogRecord, 0, len(files))
	for _, header := range files {
		fileData, err := readUploadedFile(header)
		if err != nil {
			slog.Error("Skipping unreadable upload", "filename", header.Filename, "err", err)
			continue
		}

		if record := h.catalogImage(r, fileData, header.Filename); record != nil {
			results = append(results, record)
		}
	}

	h.writeJSON(w, results)
}

// uploadedFiles collects the multipart file headers, accepting the form
// field names the legacy frontend and common clients use.
func uploadedFiles(r *http.Request) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	for _, field := range []string{"images", "files", "file"} {
		if headers := r.MultipartForm.File[field]; len(headers) > 0 {
			return headers
		}
	}
	return nil
}

func readUploadedFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileData, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	if len(fileData) >= maxImageBytes {
		return nil, fmt.Errorf("file too large (max 10MB)")
	}
	return fileData, nil
}

// catalogImage saves the image bytes and runs the enrichment pipeline.
// Returns nil when the image could not be stored or its record could not be
// persisted; either way the caller continues with the next image.
func (h *Handler) catalogImage(r *http.Request, fileData []byte, filename string) *models.CatalogRecord {
	md5Hash := utils.CalculateDataMD5(fileData)
	ext := filepath.Ext(filename)
	imageFilename := md5Hash + ext
	imageFilePath := filepath.Join(uploadsDir, imageFilename)

	if err := writeImageFile(imageFilePath, fileData); err != nil {
		slog.Error("Failed to save image", "filename", filename, "err", err)
		return nil
	}
	slog.Info("Image saved", "filename", imageFilename)

	record, err := h.builder.Process(r.Context(), imageFilePath, "/static/uploads/"+imageFilename)
	if err != nil {
		slog.Error("Failed to store catalog record, skipping image", "filename", imageFilename, "err", err)
		return nil
	}
	return record
}

func writeImageFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

func (h *Handler) downloadImageFromURL(imageURL string) ([]byte, error) {
	resp, err := http.Get(imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}
