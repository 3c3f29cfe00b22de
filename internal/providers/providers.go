package providers

import (
	"context"
)

// Config represents a single request to a vision-capable LLM provider
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	// Images holds raw image payloads to attach to the prompt. Empty for
	// text-only requests.
	Images [][]byte
	// ImageFormat names the image encoding ("jpeg", "png", ...). Defaults
	// to "jpeg" when images are attached without a format.
	ImageFormat string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	ExtractText(ctx context.Context, config Config) (string, error)
}
