// Package llm abstracts the language-model providers used for idea
// analysis, classification, and concept-image generation.
package llm

import (
	"context"
	"errors"
)

// Sentinel errors for provider failures. Completion failures abort a
// development pass; generation failures (images) are recovered by callers.
var (
	ErrCompletionFailed = errors.New("llm: completion failed")
	ErrGenerationFailed = errors.New("llm: generation failed")
)

// Client produces text completions for a prompt.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator produces a base64-encoded image for a prompt.
// Providers that cannot generate images simply do not implement it.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
