package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI embeddings API.
// text-embedding-ada-002 produces the 1536-dimensional vectors the
// content index is built around.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

var _ Provider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	m := openai.AdaEmbeddingV2
	if model != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, text string, taskType string) (*Result, error) {
	// OpenAI has no task type distinction; the parameter is kept for
	// interface compatibility.
	resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding response contained no vectors")
	}

	return &Result{Values: normalizeVector(resp.Data[0].Embedding)}, nil
}
