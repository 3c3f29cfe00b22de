package handlers

import (
	"net/http"
)

// HandleCatalog returns every stored record in insertion order.
func (h *Handler) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	records, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, "Failed to list catalog: "+err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, records)
}
