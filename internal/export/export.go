// Package export writes catalog snapshots for downstream tooling.
package export

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/snapcatalog/snapcatalog/internal/models"
	"gopkg.in/yaml.v3"
)

// yamlRecord is the YAML form of one catalog record.
type yamlRecord struct {
	ID             int64             `yaml:"id"`
	ImageURL       string            `yaml:"imageurl"`
	Name           string            `yaml:"name"`
	Description    string            `yaml:"description"`
	Specifications map[string]string `yaml:"specifications"`
	CreatedAt      string            `yaml:"createdat"`
}

// yamlSnapshot is the complete export document.
type yamlSnapshot struct {
	ExportedAt string       `yaml:"exportedat"`
	Count      int          `yaml:"count"`
	Records    []yamlRecord `yaml:"records"`
}

// ParquetRecord is one catalog record flattened for columnar storage. The
// fixed specification key set maps to one column per key.
type ParquetRecord struct {
	ID          int64  `parquet:"id"`
	ImageURL    string `parquet:"image_url"`
	Name        string `parquet:"name"`
	Description string `parquet:"description"`
	Brand       string `parquet:"brand"`
	ModelName   string `parquet:"model_name"`
	Price       string `parquet:"price"`
	Color       string `parquet:"color"`
	Material    string `parquet:"material"`
	Details     string `parquet:"details"`
	CreatedAt   string `parquet:"created_at"`
}

// WriteYAML saves the catalog to a YAML file.
func WriteYAML(path string, records []models.CatalogRecord) error {
	snapshot := yamlSnapshot{
		ExportedAt: time.Now().Format("2006-01-02_15-04-05"),
		Count:      len(records),
		Records:    make([]yamlRecord, 0, len(records)),
	}

	for _, r := range records {
		snapshot.Records = append(snapshot.Records, yamlRecord{
			ID:             r.ID,
			ImageURL:       r.ImageRef,
			Name:           r.Name,
			Description:    r.Description,
			Specifications: r.Specifications,
			CreatedAt:      r.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := yaml.Marshal(&snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}

// WriteParquet saves the catalog to a Parquet file.
func WriteParquet(path string, records []models.CatalogRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ParquetRecord](file)

	rows := make([]ParquetRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, FlattenRecord(r))
	}

	if len(rows) > 0 {
		if _, err := writer.Write(rows); err != nil {
			return fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// FlattenRecord maps a catalog record onto its columnar form.
func FlattenRecord(r models.CatalogRecord) ParquetRecord {
	return ParquetRecord{
		ID:          r.ID,
		ImageURL:    r.ImageRef,
		Name:        r.Name,
		Description: r.Description,
		Brand:       r.Specifications[models.SpecBrand],
		ModelName:   r.Specifications[models.SpecModelName],
		Price:       r.Specifications[models.SpecPrice],
		Color:       r.Specifications[models.SpecColor],
		Material:    r.Specifications[models.SpecMaterial],
		Details:     r.Specifications[models.SpecDetails],
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
	}
}
