// Package ocr wraps the text-in-image extractor collaborator. The adapter
// normalizes output to a single-space-joined token stream and reports any
// failure as an empty stream.
package ocr

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/snapcatalog/snapcatalog/internal/caption"
	"github.com/snapcatalog/snapcatalog/internal/gemini"
	"github.com/snapcatalog/snapcatalog/internal/ollama"
	"github.com/snapcatalog/snapcatalog/internal/openai"
	"github.com/snapcatalog/snapcatalog/internal/providers"
)

const ocrPrompt = `You are performing OCR (Optical Character Recognition) on a product photo.

Your task is to extract ALL visible text from the image exactly as it appears:
printed labels, tags, packaging, model numbers, and prices.

INSTRUCTIONS:
1. Read the image carefully from top to bottom
2. Transcribe every piece of visible text in its original order
3. Do not add any interpretation, commentary, or explanations
4. Do not skip any text, no matter how small
5. If no text is visible, respond with an empty string

OUTPUT FORMAT:
Provide ONLY the extracted text. Do not include phrases like "Here is the text:".`

// Service extracts printed text from product images
type Service struct {
	provider providers.Provider
	model    string
}

// NewService resolves the OCR provider and model from the environment.
// OCR_PROVIDER falls back to CAPTION_PROVIDER so a single setting configures
// both analyzers.
func NewService() *Service {
	name := os.Getenv("OCR_PROVIDER")
	if name == "" {
		name = os.Getenv("CAPTION_PROVIDER")
	}
	if name == "" {
		name = "ollama"
	}
	return &Service{
		provider: resolveProvider(name),
		model:    defaultModel(name),
	}
}

// NewServiceWithProvider wires an explicit provider, used by tests.
func NewServiceWithProvider(provider providers.Provider, model string) *Service {
	return &Service{provider: provider, model: model}
}

// Recognize returns the recognized tokens joined with single spaces, in the
// extractor's original order. Empty string on failure or when no text is
// found.
func (s *Service) Recognize(ctx context.Context, imagePath string) string {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		slog.Warn("Failed to read image for OCR", "path", imagePath, "err", err)
		return ""
	}

	raw, err := s.provider.ExtractText(ctx, providers.Config{
		Model:       s.model,
		Temperature: 0.0,
		Prompt:      ocrPrompt,
		Images:      [][]byte{imageData},
		ImageFormat: caption.ImageFormat(imagePath),
	})
	if err != nil {
		slog.Warn("Text extractor unavailable, continuing without OCR", "path", imagePath, "err", err)
		return ""
	}

	text := strings.Join(strings.Fields(raw), " ")
	slog.Debug("Extracted OCR text", "path", imagePath, "length", len(text))
	return text
}

func resolveProvider(name string) providers.Provider {
	switch name {
	case "openai":
		return openai.New()
	case "gemini":
		return gemini.New()
	default:
		return ollama.New()
	}
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	default:
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	}
}
