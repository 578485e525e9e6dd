package models

import (
	"context"
	"fmt"
	"strings"
)

// NewModel returns a concrete Model for a provider name. For the command
// provider, model names the executable to run (empty means "claude"); for
// API providers it names the model to request.
func NewModel(ctx context.Context, provider, model string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "command", "cli":
		return NewCommandModel(model), nil
	case "openai":
		return NewOpenAILLM(model), nil
	case "gemini", "google":
		return NewGeminiLLM(ctx, model)
	case "ollama":
		return NewOllamaLLM(model)
	case "anthropic", "claude":
		return NewAnthropicLLM(model), nil
	case "dummy":
		return NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
