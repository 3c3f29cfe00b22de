package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/snapcatalog/snapcatalog/internal/caption"
	"github.com/snapcatalog/snapcatalog/internal/catalog"
	"github.com/snapcatalog/snapcatalog/internal/handlers"
	"github.com/snapcatalog/snapcatalog/internal/lookup"
	"github.com/snapcatalog/snapcatalog/internal/ocr"
	"github.com/snapcatalog/snapcatalog/internal/storage"
	"github.com/spf13/cobra"
)

func defaultDBPath() string {
	if path := os.Getenv("CATALOG_DB_PATH"); path != "" {
		return path
	}
	return "catalog.db"
}

func newServeCmd() *cobra.Command {
	var port string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the catalog web server",
		Long: `Starts the snapcatalog web interface on the specified port.

Uploaded product photos are captioned and OCR'd with a vision-capable LLM
(Ollama, OpenAI, or Gemini), enriched via the configured knowledge search
API, and stored as catalog records.`,
		Example: `  # Start server on default port 8888
  snapcatalog serve

  # Start server on custom port with an explicit database
  snapcatalog serve --port 3000 --db /var/lib/snapcatalog/catalog.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = defaultDBPath()
			}

			// Long-lived handles, opened once and shared by reference.
			store, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Error("Failed to close store", "err", err)
				}
			}()

			builder := catalog.NewBuilder(
				caption.NewService(),
				ocr.NewService(),
				lookup.NewClient(),
				store,
			)
			handler := handlers.New(builder, store)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/upload", handler.HandleUpload)
			mux.HandleFunc("/api/catalog", handler.HandleCatalog)
			mux.HandleFunc("/static/", handler.HandleStatic)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Snapcatalog interface available", "addr", addr, "url", "http://localhost"+addr, "db", dbPath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database (defaults to $CATALOG_DB_PATH or catalog.db)")

	return cmd
}
