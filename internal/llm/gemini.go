package llm

import (
	"context"
	"strings"
	"sync"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
)

type geminiCompleter struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGemini creates a Completer backed by the Google Gemini API. The
// underlying client is dialed lazily on first use because construction
// requires a context.
func NewGemini(apiKey, model string) Completer {
	return &geminiCompleter{
		apiKey: apiKey,
		model:  model,
	}
}

func (c *geminiCompleter) Name() string { return "gemini" }

func (c *geminiCompleter) conn() (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	// The cached client outlives any single request, so it must not inherit
	// a request-scoped context.
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "gemini: new client")
	}
	c.client = client
	return client, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	client, err := c.conn()
	if err != nil {
		return "", err
	}

	gm := client.GenerativeModel(c.model)
	gm.SetTemperature(float32(temperature))

	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	if sb.Len() == 0 {
		return "", eris.New("gemini: empty response")
	}
	return sb.String(), nil
}
