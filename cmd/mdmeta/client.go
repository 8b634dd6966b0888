package main

import (
	"fmt"

	"github.com/OFFIS-RIT/mdmeta/internal/util"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai/ollama"
	"github.com/OFFIS-RIT/mdmeta/pkg/ai/openai"
)

// newCompletionClient builds the backend selected by name from AI_* settings.
func newCompletionClient(name string) (ai.CompletionClient, error) {
	maxRequests := int64(util.GetEnvInt("AI_MAX_CONCURRENT_REQ", 1))
	timeout := util.GetEnvSeconds("AI_TIMEOUT", 0)

	switch name {
	case "", "ollama":
		client, err := ollama.NewCompletionOllamaClient(ollama.NewCompletionOllamaClientParams{
			BaseURL:               util.GetEnvString("AI_CHAT_URL", ollama.DefaultBaseURL),
			ApiKey:                util.GetEnv("AI_CHAT_KEY"),
			MaxConcurrentRequests: maxRequests,
			Timeout:               timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("could not create Ollama client: %w", err)
		}
		return client, nil
	case "openai":
		return openai.NewCompletionOpenAIClient(openai.NewCompletionOpenAIClientParams{
			ChatURL:               util.GetEnv("AI_CHAT_URL"),
			ChatKey:               util.GetEnv("AI_CHAT_KEY"),
			MaxConcurrentRequests: maxRequests,
			Timeout:               timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown AI adapter %q", name)
	}
}
