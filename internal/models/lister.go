package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// ErrNoAPIKey is returned when neither an OpenAI nor a Gemini key is set
var ErrNoAPIKey = errors.New("no API key found. Set OPENAI_API_KEY or GEMINI_API_KEY, or configure them in .flashy.yaml")

// Lister handles listing available translation models
type Lister struct {
	openaiKey string
	geminiKey string
	client    *openai.Client
}

// NewLister creates a new model lister. Either key may be empty.
func NewLister(openaiKey, geminiKey string) *Lister {
	return &Lister{
		openaiKey: openaiKey,
		geminiKey: geminiKey,
		client:    openai.NewClient(openaiKey),
	}
}

// OpenAIChatModels returns the sorted ids of the OpenAI models that can
// answer chat completions
func (l *Lister) OpenAIChatModels(ctx context.Context) ([]string, error) {
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}

	var chatModels []string
	for _, model := range models.Models {
		if isOpenAIChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}

	sort.Strings(chatModels)
	return chatModels, nil
}

func isOpenAIChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "image", "search", "embedding", "moderation", "dall-e", "whisper"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt") || strings.HasPrefix(id, "chatgpt") || strings.HasPrefix(id, "o")
}

// GeminiChatModels returns the sorted names of the Gemini models that
// support content generation
func (l *Lister) GeminiChatModels(ctx context.Context) ([]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  l.geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var chatModels []string
	for model, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list Gemini models: %w", err)
		}
		if !supports(model.SupportedActions, "generateContent") {
			continue
		}
		chatModels = append(chatModels, strings.TrimPrefix(model.Name, "models/"))
	}

	sort.Strings(chatModels)
	return chatModels, nil
}

func supports(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// ListAvailableModels prints the chat models of every provider with a key.
// A provider that fails is reported in its section and does not stop the
// listing.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	if l.openaiKey == "" && l.geminiKey == "" {
		return ErrNoAPIKey
	}

	fmt.Fprintln(w, "Available translation models:")

	if l.openaiKey != "" {
		models, err := l.OpenAIChatModels(ctx)
		printSection(w, "OpenAI (--openai-model)", models, err)
	}
	if l.geminiKey != "" {
		models, err := l.GeminiChatModels(ctx)
		printSection(w, "Gemini (--gemini-model)", models, err)
	}

	return nil
}

func printSection(w io.Writer, title string, models []string, err error) {
	fmt.Fprintf(w, "\n%s:\n", title)
	switch {
	case err != nil:
		fmt.Fprintf(w, "  Error: %v\n", err)
	case len(models) == 0:
		fmt.Fprintln(w, "  No chat models found")
	default:
		for _, model := range models {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}
}
