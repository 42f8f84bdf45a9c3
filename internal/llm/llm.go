// Package llm exposes the text-completion capability behind one narrow
// interface, with one implementation per vendor selected at configuration
// time. Vendor request/response shaping never leaks past this package.
package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/people-aggregator/internal/config"
)

// Completer is the single capability consumers depend on. A nil Completer
// means the capability is not configured and deterministic fallbacks apply.
type Completer interface {
	// Name returns the provider identifier.
	Name() string
	// Complete sends one prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// New builds the Completer selected by cfg. It returns nil when the selected
// provider has no credential, which disables the capability process-wide.
func New(cfg config.LLMConfig) Completer {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		if cfg.AnthropicKey != "" {
			zap.L().Info("llm: using anthropic", zap.String("model", cfg.AnthropicModel))
			return NewAnthropic(cfg.AnthropicKey, cfg.AnthropicModel, cfg.MaxTokens)
		}
	case "openai":
		if cfg.OpenAIKey != "" {
			zap.L().Info("llm: using openai", zap.String("model", cfg.OpenAIModel))
			return NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.MaxTokens)
		}
	case "gemini":
		if cfg.GeminiKey != "" {
			zap.L().Info("llm: using gemini", zap.String("model", cfg.GeminiModel))
			return NewGemini(cfg.GeminiKey, cfg.GeminiModel)
		}
	}
	zap.L().Warn("llm: no provider configured, fallback paths active",
		zap.String("provider", cfg.Provider),
	)
	return nil
}

// StripFences removes a wrapping markdown code fence from a model response.
// Providers asked for raw JSON still wrap it in ```json fences now and then.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
