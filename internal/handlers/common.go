package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/snapcatalog/snapcatalog/internal/catalog"
	"github.com/snapcatalog/snapcatalog/internal/models"
)

const uploadsDir = "uploads"

// Lister reads back stored records in insertion order.
type Lister interface {
	List(ctx context.Context) ([]models.CatalogRecord, error)
}

// Store is the persistence surface the HTTP layer needs.
type Store interface {
	catalog.RecordCreator
	Lister
}

type Handler struct {
	builder *catalog.Builder
	store   Store
}

// New creates a handler around the shared builder and store handles.
func New(builder *catalog.Builder, store Store) *Handler {
	return &Handler{
		builder: builder,
		store:   store,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(uploadsDir, 0755)
}
