// Package caption wraps the vision captioner collaborator. Failures never
// cross this boundary: callers always get a caption string, possibly empty.
package caption

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/snapcatalog/snapcatalog/internal/gemini"
	"github.com/snapcatalog/snapcatalog/internal/ollama"
	"github.com/snapcatalog/snapcatalog/internal/openai"
	"github.com/snapcatalog/snapcatalog/internal/providers"
)

const captionPrompt = `Describe the product shown in this image in one short natural-language sentence.

INSTRUCTIONS:
1. Focus on what the product is, its prominent visual features, and its setting
2. Do not read or transcribe text printed on the product
3. Do not add commentary, lists, or explanations

OUTPUT FORMAT:
A single sentence. Start immediately with the description, e.g.
"a pair of white running shoes on a wooden table"`

// Service generates a natural-language caption for a product image
type Service struct {
	provider providers.Provider
	model    string
}

// NewService resolves the captioning provider and model from the environment.
func NewService() *Service {
	name := os.Getenv("CAPTION_PROVIDER")
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

// Describe returns a caption for the image at imagePath. Any underlying
// failure is logged and reported as an empty caption so downstream logic can
// treat "no caption" uniformly.
func (s *Service) Describe(ctx context.Context, imagePath string) string {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		slog.Warn("Failed to read image for captioning", "path", imagePath, "err", err)
		return ""
	}

	text, err := s.provider.ExtractText(ctx, providers.Config{
		Model:       s.model,
		Temperature: 0.2,
		Prompt:      captionPrompt,
		Images:      [][]byte{imageData},
		ImageFormat: ImageFormat(imagePath),
	})
	if err != nil {
		slog.Warn("Captioner unavailable, continuing without caption", "path", imagePath, "err", err)
		return ""
	}

	caption := strings.TrimSpace(text)
	slog.Debug("Generated caption", "path", imagePath, "length", len(caption))
	return caption
}

// ImageFormat maps a file extension to the payload format providers expect.
func ImageFormat(imagePath string) string {
	switch strings.ToLower(filepath.Ext(imagePath)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
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
