// Package catalog orchestrates the per-image enrichment pipeline and is the
// only place that defines the shape of a catalog record.
package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/snapcatalog/snapcatalog/internal/extract"
	"github.com/snapcatalog/snapcatalog/internal/models"
)

const (
	namePrefix = "Product Based on "
	nameSuffix = "..."

	// nameCaptionRunes bounds how much of the caption flows into the name.
	nameCaptionRunes = 30

	specColorDefault    = "Varied"
	specMaterialDefault = "Synthetic"
)

// Captioner describes an image in one natural-language sentence.
// Implementations absorb their own failures and return "".
type Captioner interface {
	Describe(ctx context.Context, imagePath string) string
}

// TextRecognizer extracts a normalized token stream from an image.
// Implementations absorb their own failures and return "".
type TextRecognizer interface {
	Recognize(ctx context.Context, imagePath string) string
}

// Searcher queries the external knowledge collaborator for a caption and
// returns the Details value, falling back to a sentinel on failure.
type Searcher interface {
	Search(ctx context.Context, query string) string
}

// RecordCreator persists a fully composed record and assigns its id.
type RecordCreator interface {
	Create(ctx context.Context, imageRef, name, description string, specs models.Specifications) (*models.CatalogRecord, error)
}

// Builder runs the analyzers for one image and composes the catalog record
type Builder struct {
	captioner  Captioner
	recognizer TextRecognizer
	searcher   Searcher
	store      RecordCreator
}

// NewBuilder wires the long-lived analyzer and store handles. The handles are
// created once at process start and shared across requests.
func NewBuilder(captioner Captioner, recognizer TextRecognizer, searcher Searcher, store RecordCreator) *Builder {
	return &Builder{
		captioner:  captioner,
		recognizer: recognizer,
		searcher:   searcher,
		store:      store,
	}
}

// Process runs the full pipeline for one image and persists the result.
// Analyzer failures degrade the record but never fail it; the only error
// this returns is a store-write failure, and that drops only this image.
func (b *Builder) Process(ctx context.Context, imagePath, imageRef string) (*models.CatalogRecord, error) {
	caption := b.captioner.Describe(ctx, imagePath)
	ocrText := b.recognizer.Recognize(ctx, imagePath)
	fields := extract.FromText(ocrText)
	details := b.searcher.Search(ctx, caption)

	specs := models.NewSpecifications()
	specs[models.SpecBrand] = fields.Brand
	specs[models.SpecModelName] = fields.ModelName
	specs[models.SpecPrice] = fields.Price
	specs[models.SpecColor] = specColorDefault
	specs[models.SpecMaterial] = specMaterialDefault
	specs[models.SpecDetails] = details

	name := composeName(caption)
	description := composeDescription(caption, ocrText)

	record, err := b.store.Create(ctx, imageRef, name, description, specs)
	if err != nil {
		return nil, err
	}

	slog.Info("Cataloged product image", "id", record.ID, "image", imageRef, "caption_length", len(caption), "ocr_length", len(ocrText))
	return record, nil
}

func composeName(caption string) string {
	runes := []rune(caption)
	if len(runes) > nameCaptionRunes {
		runes = runes[:nameCaptionRunes]
	}
	return namePrefix + string(runes) + nameSuffix
}

// composeDescription joins caption and OCR text with a single space; when
// both analyzers failed the description stays empty.
func composeDescription(caption, ocrText string) string {
	parts := make([]string, 0, 2)
	if caption != "" {
		parts = append(parts, caption)
	}
	if ocrText != "" {
		parts = append(parts, ocrText)
	}
	return strings.Join(parts, " ")
}
