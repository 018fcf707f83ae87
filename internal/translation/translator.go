package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when a remote translator has no credentials
var ErrNoAPIKey = errors.New("translation API key not found")

// Translator translates a single word or short phrase between two
// languages, named the way the word list headers name them ("French")
type Translator interface {
	Translate(ctx context.Context, text, from, to string) (string, error)
}

// Prompt builds the instruction sent to the language models
func Prompt(text, from, to string) string {
	return fmt.Sprintf("Translate the %s word '%s' to %s. Respond with only the %s translation, nothing else.",
		from, text, to, to)
}

// OpenAITranslator translates with an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	return NewOpenAITranslatorWithBaseURL(apiKey, model, "")
}

// NewOpenAITranslatorWithBaseURL creates a translator for an OpenAI
// compatible endpoint. An empty baseURL means the official API.
func NewOpenAITranslatorWithBaseURL(apiKey, model, baseURL string) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4oMini
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// Translate translates text from one language to another
func (t *OpenAITranslator) Translate(ctx context.Context, text, from, to string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrNoAPIKey)
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: Prompt(text, from, to),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	translation := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translation == "" {
		return "", fmt.Errorf("empty translation for %q", text)
	}
	return translation, nil
}
