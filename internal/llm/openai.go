package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIConfig points at any OpenAI-compatible chat-completion endpoint.
type OpenAIConfig struct {
	BaseURL   string
	APIKey    string
	Model     string
	MaxTokens int
}

// OpenAICompleter returns a completer backed by a direct chat-completion
// endpoint. An empty BaseURL and APIKey means the fallback is unconfigured
// and the completer reports ErrUnavailable.
func OpenAICompleter(cfg OpenAIConfig) CompleteFunc {
	if cfg.BaseURL == "" && cfg.APIKey == "" {
		return func(ctx context.Context, msgs []Message) (string, error) {
			return "", ErrUnavailable
		}
	}
	cc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		cc.BaseURL = cfg.BaseURL
	}
	client := openai.NewClientWithConfig(cc)
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return func(ctx context.Context, msgs []Message) (string, error) {
		req := openai.ChatCompletionRequest{
			Model:     model,
			MaxTokens: cfg.MaxTokens,
		}
		for _, m := range msgs {
			req.Messages = append(req.Messages, openai.ChatCompletionMessage{
				Role:    m.Role,
				Content: m.Content,
			})
		}
		resp, err := client.CreateChatCompletion(ctx, req)
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}
		return resp.Choices[0].Message.Content, nil
	}
}
