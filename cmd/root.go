package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapcatalog",
		Short: "Product photo cataloging service with analyzer-fusion enrichment",
		Long: `Snapcatalog turns product photos into structured catalog records.

Each uploaded image runs through a pipeline of independent analyzers (visual
captioning, on-image text extraction, heuristic field parsing, external
knowledge lookup) whose outputs are fused into one record and persisted.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}
