package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiTranslator translates with a Gemini model
type GeminiTranslator struct {
	client *genai.Client
	model  string
}

// NewGeminiTranslator creates a Gemini backed translator
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	return NewGeminiTranslatorWithBaseURL(ctx, apiKey, model, "")
}

// NewGeminiTranslatorWithBaseURL creates a Gemini translator talking to a
// custom endpoint ("" means the public API)
func NewGeminiTranslatorWithBaseURL(ctx context.Context, apiKey, model, baseURL string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrNoAPIKey)
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{client: client, model: model}, nil
}

// Translate translates text from one language to another
func (t *GeminiTranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	resp, err := t.client.Models.GenerateContent(ctx, t.model,
		genai.Text(Prompt(text, from, to)),
		generateConfig(t.model))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	translation := strings.TrimSpace(resp.Text())
	if translation == "" {
		return "", fmt.Errorf("empty translation for %q", text)
	}
	return translation, nil
}

// generateConfig keeps answers short. Thinking tokens count against
// MaxOutputTokens, so the cap is only set where thinking can be switched
// off; the pro models always think.
func generateConfig(model string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	}
	if strings.Contains(model, "flash") {
		config.MaxOutputTokens = 50
		config.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)}
	}
	return config
}
