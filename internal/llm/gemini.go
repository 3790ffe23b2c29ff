package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Compile-time checks.
var (
	_ Client         = (*GeminiClient)(nil)
	_ ImageGenerator = (*GeminiClient)(nil)
)

// GeminiConfig configures the Gemini provider.
type GeminiConfig struct {
	APIKey     string
	Model      string
	ImageModel string
}

// GeminiClient implements Client and ImageGenerator on the Google
// GenAI SDK.
type GeminiClient struct {
	client     *genai.Client
	model      string
	imageModel string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, config GeminiConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("llm: gemini API key is required")
	}
	if config.Model == "" {
		config.Model = "gemini-2.0-flash"
	}
	if config.ImageModel == "" {
		config.ImageModel = "imagen-3.0-generate-002"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: config.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		model:      config.Model,
		imageModel: config.ImageModel,
	}, nil
}

// Complete sends the prompt to the configured Gemini model.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCompletionFailed, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrCompletionFailed)
	}
	return text, nil
}

// GenerateImage produces a base64-encoded PNG for the prompt using the
// configured image model.
func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateImages(ctx, c.imageModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return "", fmt.Errorf("%w: no image returned", ErrGenerationFailed)
	}

	return base64.StdEncoding.EncodeToString(result.GeneratedImages[0].Image.ImageBytes), nil
}
