package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiEmbedder generates text embeddings with the Gemini embedding
// models. Used to find related journal entries; the similarity lookup is
// an optional feature, so a degraded gateway simply yields no embedder.
type GeminiEmbedder struct {
	gw    *GeminiGateway
	model string
}

// Embedder returns an EmbeddingGenerator sharing this gateway's client,
// limiter, and breaker. Returns nil when the gateway is degraded.
func (g *GeminiGateway) Embedder(model string) EmbeddingGenerator {
	if g.client == nil {
		return nil
	}
	if model == "" {
		model = "gemini-embedding-001"
	}
	return &GeminiEmbedder{gw: g, model: model}
}

// Embed generates an embedding for a single text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := e.gw.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.gw.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}

	result, err := e.gw.breaker.Execute(ctx, func() (interface{}, error) {
		resp, err := e.gw.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
			TaskType: "SEMANTIC_SIMILARITY",
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		return resp.Embeddings[0].Values, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return result.([]float32), nil
}

// GetModel returns the configured embedding model name.
func (e *GeminiEmbedder) GetModel() string {
	return e.model
}

// Compile-time assertion.
var _ EmbeddingGenerator = (*GeminiEmbedder)(nil)
