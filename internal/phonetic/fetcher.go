package phonetic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// ErrNoAPIKey is returned when the fetcher has no OpenAI key
var ErrNoAPIKey = errors.New("OpenAI API key not configured")

// Fetcher handles fetching phonetic transcriptions
type Fetcher struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewFetcher creates a new phonetic information fetcher. An empty model
// means gpt-4o-mini.
func NewFetcher(apiKey, model string) *Fetcher {
	return NewFetcherWithBaseURL(apiKey, model, "")
}

// NewFetcherWithBaseURL creates a fetcher talking to an OpenAI compatible
// endpoint
func NewFetcherWithBaseURL(apiKey, model, baseURL string) *Fetcher {
	if model == "" {
		model = openai.GPT4oMini
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Fetcher{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// Fetch returns the IPA transcription of word, e.g. "/ʃa/" for the French
// word "chat"
func (f *Fetcher) Fetch(ctx context.Context, word, language string) (string, error) {
	if f.apiKey == "" {
		return "", ErrNoAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: f.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a %s language expert helping language learners with pronunciation.", language),
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Give the IPA transcription of the %s word '%s'. "+
					"Respond with only the transcription between slashes, nothing else.", language, word),
			},
		},
		Temperature: 0.3,
		MaxTokens:   50,
	}

	resp, err := f.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return normalize(resp.Choices[0].Message.Content), nil
}

// normalize trims the answer to a single /.../ transcription
func normalize(answer string) string {
	answer = strings.TrimSpace(answer)
	if line, _, found := strings.Cut(answer, "\n"); found {
		answer = strings.TrimSpace(line)
	}
	answer = strings.Trim(answer, "/[] ")
	return "/" + answer + "/"
}
