package factory

import (
	"fmt"

	"shadowwork-be/pkg/llm"
	"shadowwork-be/pkg/llm/ollama"
	"shadowwork-be/pkg/llm/openai"
	"shadowwork-be/pkg/llm/stub"
)

func NewLLMProvider(providerType, modelName, baseURL, openAIKey string) (llm.Provider, error) {
	switch providerType {
	case "openai":
		return openai.NewOpenAIProvider(openAIKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "stub":
		return stub.NewStubProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
