package handlers

import (
	"net/http"
	"strings"
)

// HandleStatic serves uploaded images and the bundled frontend assets. The
// core only ever constructs image refs of the form /static/uploads/<name>;
// it never interprets them.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	filepath := strings.TrimPrefix(r.URL.Path, "/static/")

	// Prevent directory traversal attacks
	if strings.Contains(filepath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	if strings.HasPrefix(filepath, "uploads/") {
		http.ServeFile(w, r, filepath)
		return
	}

	if filepath == "" {
		filepath = "index.html"
	}

	// Set appropriate content type based on file extension
	switch {
	case strings.HasSuffix(filepath, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(filepath, ".js"):
		w.Header().Set("Content-Type", "application/javascript")
	case strings.HasSuffix(filepath, ".html"):
		w.Header().Set("Content-Type", "text/html")
	}

	// Serve files from the static directory
	http.ServeFile(w, r, "static/"+filepath)
}
