package embedding

import (
	"context"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider generates embeddings through the OpenAI embeddings API.
type OpenAIProvider struct {
	client *goopenai.Client
	model  goopenai.EmbeddingModel
}

var _ EmbeddingProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey string, model string) *OpenAIProvider {
	m := goopenai.SmallEmbedding3
	if model != "" {
		m = goopenai.EmbeddingModel(model)
	}
	return &OpenAIProvider{
		client: goopenai.NewClient(apiKey),
		model:  m,
	}
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	req := goopenai.EmbeddingRequest{
		Input: []string{text},
		Model: p.model,
	}
	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding: no embedding data")
	}
	return resp.Data[0].Embedding, nil
}
