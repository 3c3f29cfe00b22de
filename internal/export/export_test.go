package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/snapcatalog/snapcatalog/internal/models"
	"gopkg.in/yaml.v3"
)

func sampleRecords() []models.CatalogRecord {
	specs := models.NewSpecifications()
	specs[models.SpecBrand] = "Acme"
	specs[models.SpecModelName] = "Model-7"
	specs[models.SpecPrice] = "$12.50"
	specs[models.SpecColor] = "Varied"
	specs[models.SpecMaterial] = "Synthetic"
	specs[models.SpecDetails] = "One | Two | Three"

	return []models.CatalogRecord{
		{
			ID:             1,
			ImageRef:       "/static/uploads/abc.jpg",
			Name:           "Product Based on a widget...",
			Description:    "a widget Acme Model-7 $12.50",
			Specifications: specs,
			CreatedAt:      time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		{
			ID:             2,
			ImageRef:       "/static/uploads/def.png",
			Name:           "Product Based on ...",
			Description:    "",
			Specifications: models.NewSpecifications(),
			CreatedAt:      time.Date(2026, 1, 2, 3, 5, 6, 0, time.UTC),
		},
	}
}

func TestWriteYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := WriteYAML(path, sampleRecords()); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}

	var snapshot struct {
		Count   int `yaml:"count"`
		Records []struct {
			ID             int64             `yaml:"id"`
			Name           string            `yaml:"name"`
			Specifications map[string]string `yaml:"specifications"`
		} `yaml:"records"`
	}
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("Export is not valid YAML: %v", err)
	}

	if snapshot.Count != 2 {
		t.Errorf("Expected count 2, got %d", snapshot.Count)
	}
	if len(snapshot.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(snapshot.Records))
	}
	if snapshot.Records[0].Specifications[models.SpecBrand] != "Acme" {
		t.Errorf("Expected brand Acme, got %q", snapshot.Records[0].Specifications[models.SpecBrand])
	}
}

func TestWriteParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.parquet")
	records := sampleRecords()
	if err := WriteParquet(path, records); err != nil {
		t.Fatalf("WriteParquet failed: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open parquet file: %v", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		t.Fatalf("Failed to stat parquet file: %v", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		t.Fatalf("Failed to open parquet: %v", err)
	}

	reader := parquet.NewGenericReader[ParquetRecord](pf)
	defer reader.Close()

	rows := make([]ParquetRecord, len(records))
	n, _ := reader.Read(rows)
	if n != len(records) {
		t.Fatalf("Expected %d rows, got %d", len(records), n)
	}

	if rows[0].Brand != "Acme" || rows[0].ModelName != "Model-7" || rows[0].Price != "$12.50" {
		t.Errorf("Unexpected first row: %+v", rows[0])
	}
	if rows[1].ID != 2 || rows[1].Brand != "" {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

func TestWriteParquetEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteParquet(path, nil); err != nil {
		t.Fatalf("WriteParquet failed for empty catalog: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected parquet file to exist: %v", err)
	}
}
