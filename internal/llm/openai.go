package llm

import (
	"context"

	"github.com/rotisserie/eris"
	openai "github.com/sashabaranov/go-openai"
)

type openaiCompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI creates a Completer backed by the OpenAI chat completions API.
func NewOpenAI(apiKey, model string, maxTokens int) Completer {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &openaiCompleter{
		client:    openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *openaiCompleter) Name() string { return "openai" }

func (c *openaiCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(temperature),
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "openai: chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("openai: empty choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
