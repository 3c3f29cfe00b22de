package cmd

import (
	"fmt"
	"log/slog"

	"github.com/snapcatalog/snapcatalog/internal/export"
	"github.com/snapcatalog/snapcatalog/internal/storage"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string
	var output string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the catalog to YAML or Parquet",
		Long: `Exports every stored catalog record, in insertion order, to a file
for downstream tooling (spreadsheets, dataset pipelines, search indexing).`,
		Example: `  # Export to YAML
  snapcatalog export --format yaml --output catalog.yaml

  # Export to Parquet
  snapcatalog export --format parquet --output catalog.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = defaultDBPath()
			}

			store, err := storage.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					slog.Error("Failed to close store", "err", err)
				}
			}()

			records, err := store.List(cmd.Context())
			if err != nil {
				return err
			}

			switch format {
			case "yaml":
				err = export.WriteYAML(output, records)
			case "parquet":
				err = export.WriteParquet(output, records)
			default:
				return fmt.Errorf("unsupported format: %s (supported: yaml, parquet)", format)
			}
			if err != nil {
				return err
			}

			slog.Info("Exported catalog", "records", len(records), "format", format, "output", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Export format: yaml or parquet")
	cmd.Flags().StringVarP(&output, "output", "o", "catalog.yaml", "Output file path")
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the catalog database (defaults to $CATALOG_DB_PATH or catalog.db)")

	return cmd
}
