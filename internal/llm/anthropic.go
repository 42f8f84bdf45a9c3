package llm

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

type anthropicCompleter struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropic creates a Completer backed by the official Anthropic SDK.
func NewAnthropic(apiKey, model string, maxTokens int) Completer {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &anthropicCompleter{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

func (c *anthropicCompleter) Name() string { return "anthropic" }

func (c *anthropicCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
		},
		Temperature: sdk.Float(temperature),
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
