package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Specification keys. Every record carries exactly this key set, no matter
// which analyzers succeeded for it.
const (
	SpecBrand     = "Brand"
	SpecModelName = "Model Name"
	SpecPrice     = "Price"
	SpecColor     = "Color"
	SpecMaterial  = "Material"
	SpecDetails   = "Details"
)

// SpecKeys lists the fixed specification key set in display order.
var SpecKeys = []string{SpecBrand, SpecModelName, SpecPrice, SpecColor, SpecMaterial, SpecDetails}

// Specifications maps the fixed key set to plain string values.
type Specifications map[string]string

// CatalogRecord represents one cataloged product photo
type CatalogRecord struct {
	ID             int64          `json:"id"`
	ImageRef       string         `json:"image_url"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Specifications Specifications `json:"specifications"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewSpecifications returns the six known keys mapped to empty values.
func NewSpecifications() Specifications {
	specs := make(Specifications, len(SpecKeys))
	for _, key := range SpecKeys {
		specs[key] = ""
	}
	return specs
}

// Validate checks that the mapping holds exactly the known key set.
func (s Specifications) Validate() error {
	if s == nil {
		return fmt.Errorf("specifications mapping is nil")
	}
	if len(s) != len(SpecKeys) {
		return fmt.Errorf("expected %d specification keys, got %d", len(SpecKeys), len(s))
	}
	for _, key := range SpecKeys {
		if _, ok := s[key]; !ok {
			return fmt.Errorf("missing specification key %q", key)
		}
	}
	return nil
}

// Encode serializes the mapping to its persisted JSON form.
func (s Specifications) Encode() (string, error) {
	if err := s.Validate(); err != nil {
		return "", fmt.Errorf("encode specifications: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode specifications: %w", err)
	}
	return string(data), nil
}

// DecodeSpecifications parses a persisted specifications payload. Malformed
// or schema-violating input fails closed to the empty key set so a legacy row
// can never break a listing. Decoding is a pure parse, the payload is never
// evaluated.
func DecodeSpecifications(raw string) (Specifications, error) {
	var specs Specifications
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return NewSpecifications(), fmt.Errorf("decode specifications: %w", err)
	}
	if err := specs.Validate(); err != nil {
		return NewSpecifications(), fmt.Errorf("decode specifications: %w", err)
	}
	return specs, nil
}
